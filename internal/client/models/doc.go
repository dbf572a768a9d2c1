// Package models defines the records the admin client exchanges with the
// backend: five property kinds, two master kinds, their create/update
// inputs, the image set attached to them and the session returned by login.
//
// Wire names follow the backend's snake_case JSON. Server-assigned fields
// (ids, timestamps, denormalised join fields such as building_name) live on
// the record types only and never on inputs.
package models
