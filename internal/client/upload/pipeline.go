package upload

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/miy4x/shigezane-admin/internal/client/models"
	"github.com/miy4x/shigezane-admin/internal/logging"
)

const defaultGalleryConcurrency = 4

// Pipeline runs upload tasks.
type Pipeline struct {
	credentials CredentialSource
	remover     ImageRemover
	compressor  Compressor
	writers     map[string]BlobWriter
	names       ObjectNamer
	logger      logging.Logger
	onState     StateFunc
	concurrency int
}

type Option func(*Pipeline)

func WithCompressor(c Compressor) Option {
	return func(p *Pipeline) { p.compressor = c }
}

// WithWriter registers w for a credential provider name.
func WithWriter(provider string, w BlobWriter) Option {
	return func(p *Pipeline) { p.writers[provider] = w }
}

func WithNamer(n ObjectNamer) Option {
	return func(p *Pipeline) { p.names = n }
}

func WithLogger(l logging.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

func WithStateFunc(fn StateFunc) Option {
	return func(p *Pipeline) { p.onState = fn }
}

// WithConcurrency bounds parallel gallery uploads.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

func NewPipeline(creds CredentialSource, remover ImageRemover, opts ...Option) *Pipeline {
	p := &Pipeline{
		credentials: creds,
		remover:     remover,
		compressor:  NewJPEGCompressor(),
		writers: map[string]BlobWriter{
			ProviderAzure: AzureWriter{},
			ProviderS3:    S3Writer{},
		},
		names:       TimestampNamer(time.Now),
		logger:      logging.Discard(),
		concurrency: defaultGalleryConcurrency,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// UploadImage uploads f compressed toward b and returns its durable URL.
func (p *Pipeline) UploadImage(ctx context.Context, f File, b Budget) (string, error) {
	t := &Task{Field: models.ImageField{Role: models.RoleMain}, File: f, Budget: b}
	err := p.Run(ctx, t)
	return t.URL, err
}

// UploadForRole uploads f with the budget of role.
func (p *Pipeline) UploadForRole(ctx context.Context, f File, role models.ImageRole) (string, error) {
	return p.UploadImage(ctx, f, BudgetFor(role))
}

// Run drives t from Idle to Done or Failed. A task that already reached a
// terminal state is rejected; retrying means creating a new task.
func (p *Pipeline) Run(ctx context.Context, t *Task) error {
	if t.State != Idle {
		return fmt.Errorf("task %s is %s", t.Field, t.State)
	}
	log := p.logger.With("field", t.Field.String(), "file", t.File.Name)

	if err := CheckFile(t.File.ContentType, t.File.Size()); err != nil {
		return p.fail(ctx, t, err)
	}

	p.transition(t, Compressing)
	data := p.compress(ctx, log, t)
	if err := ctx.Err(); err != nil {
		return p.fail(ctx, t, err)
	}

	p.transition(t, AcquiringCredential)
	cred, err := p.credentials.UploadCredential(ctx)
	if err != nil {
		return p.fail(ctx, t, &StorageError{Stage: AcquiringCredential, Err: err})
	}
	if exp, ok := cred.Expiry(); ok && !time.Now().Before(exp) {
		return p.fail(ctx, t, &StorageError{Stage: AcquiringCredential, Err: fmt.Errorf("%w: expired at %s", ErrCredential, cred.ExpiresOn)})
	}
	writer, ok := p.writers[providerOf(cred)]
	if !ok {
		return p.fail(ctx, t, &StorageError{Stage: AcquiringCredential, Err: fmt.Errorf("%w: unknown provider %q", ErrCredential, cred.Provider)})
	}

	p.transition(t, Uploading)
	raw, err := writer.Write(ctx, cred, p.names(extFor(data.ContentType)), data)
	if err != nil {
		return p.fail(ctx, t, &StorageError{Stage: Uploading, Err: err})
	}
	u, err := StripCredentials(raw)
	if err != nil {
		return p.fail(ctx, t, &StorageError{Stage: Uploading, Err: err})
	}

	t.URL = u
	p.transition(t, Done)
	log.Info(ctx, "image uploaded", "url", u, "bytes", data.Size(), "original_bytes", t.File.Size())
	return nil
}

// compress never fails the task: any error or panic falls back to the
// original bytes.
func (p *Pipeline) compress(ctx context.Context, log logging.Logger, t *Task) (out File) {
	out = t.File
	defer func() {
		if r := recover(); r != nil {
			log.Warn(ctx, "compression panicked, uploading original", "panic", r)
			out = t.File
		}
	}()

	c, err := p.compressor.Compress(ctx, t.File, t.Budget)
	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			log.Warn(ctx, "compression failed, uploading original", "error", err)
		}
		return t.File
	}
	return c
}

func (p *Pipeline) fail(ctx context.Context, t *Task, err error) error {
	t.Err = err
	p.transition(t, Failed)
	p.logger.Warn(ctx, "image upload failed", "field", t.Field.String(), "error", err)
	return err
}

func (p *Pipeline) transition(t *Task, s State) {
	t.State = s
	if p.onState != nil {
		p.onState(t.Field, s)
	}
}

// DeleteImage removes a stored image. Placeholders and empty values were
// never stored, so they are a no-op.
func (p *Pipeline) DeleteImage(ctx context.Context, imageURL string) error {
	if imageURL == "" || models.IsLocalPreview(imageURL) {
		return nil
	}
	return p.remover.DeleteImage(ctx, imageURL)
}
