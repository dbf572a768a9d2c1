// Package upload turns a picked image file into a durable public URL.
//
// A task runs strictly in order: compress toward the budget of the image's
// role, acquire a single-use write credential from the backend, write the
// bytes to blob storage under a fresh object name, and return the object
// URL with any credential query stripped. Compression failures fall back
// to the original bytes; credential and storage failures surface as
// *StorageError.
//
// Azure (SAS) and S3-compatible (temporary keys) stores are supported; the
// credential's provider field picks the writer.
package upload
