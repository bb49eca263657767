package interview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BerylCAtieno/romantic-brand-builder/internal/metrics"
	"github.com/BerylCAtieno/romantic-brand-builder/internal/models"
)

const (
	maxImages = models.MaxImages

	// DefaultMaxImageBytes caps a single uploaded photo.
	DefaultMaxImageBytes int64 = 8 << 20
)

var (
	ErrBusy                 = errors.New("interview: photos are still being processed")
	ErrToneRequired         = errors.New("interview: pick a tone before continuing")
	ErrUnknownField         = errors.New("interview: unknown field")
	ErrInvalidTone          = errors.New("interview: invalid tone")
	ErrImageIndexOutOfRange = errors.New("interview: image index out of range")
	ErrImageTooLarge        = errors.New("image exceeds size limit")
)

type Field string

const (
	FieldName          Field = "name"
	FieldAge           Field = "age"
	FieldGender        Field = "gender"
	FieldProfession    Field = "profession"
	FieldHobbies       Field = "hobbies"
	FieldVibe          Field = "vibe"
	FieldTargetPartner Field = "targetPartner"
	FieldTone          Field = "tone"
)

// ImageFile is one selected file in an attachment batch.
type ImageFile struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// Wizard is the interview state machine. It is safe for concurrent use;
// only one image batch may be in flight at a time.
type Wizard struct {
	mu       sync.Mutex
	step     Step
	input    models.InterviewInput
	busy     bool
	epoch    uint64
	maxBytes int64
	logger   *zap.Logger
}

type Option func(*Wizard)

func WithMaxImageBytes(n int64) Option {
	return func(w *Wizard) {
		if n > 0 {
			w.maxBytes = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(w *Wizard) {
		if l != nil {
			w.logger = l
		}
	}
}

func New(opts ...Option) *Wizard {
	w := &Wizard{
		maxBytes: DefaultMaxImageBytes,
		logger:   zap.NewNop(),
		input:    models.InterviewInput{Images: []models.Image{}},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Busy reports whether an image batch is being decoded.
func (w *Wizard) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

func (w *Wizard) CanAdvance() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.blockedLocked() == nil
}

func (w *Wizard) blockedLocked() error {
	if w.busy {
		return ErrBusy
	}
	if w.step >= StepGoals && w.input.Tone == "" {
		return ErrToneRequired
	}
	return nil
}

// Advance moves to the next step. On the last step it instead returns a
// copy of the completed input with submitted set. A blocked advance returns
// ErrBusy or ErrToneRequired and changes nothing.
func (w *Wizard) Advance() (input models.InterviewInput, submitted bool, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.blockedLocked(); err != nil {
		return models.InterviewInput{}, false, err
	}
	if w.step < LastStep {
		w.step++
		return models.InterviewInput{}, false, nil
	}
	return w.input.Clone(), true, nil
}

// Retreat moves back one step and reports whether it moved.
func (w *Wizard) Retreat() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step == StepBasics {
		return false
	}
	w.step--
	return true
}

// SetField replaces exactly one text field. It works from any step.
func (w *Wizard) SetField(field Field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch field {
	case FieldName:
		w.input.Name = value
	case FieldAge:
		w.input.Age = value
	case FieldGender:
		w.input.Gender = value
	case FieldProfession:
		w.input.Profession = value
	case FieldHobbies:
		w.input.Hobbies = value
	case FieldVibe:
		w.input.Vibe = value
	case FieldTargetPartner:
		w.input.TargetPartner = value
	case FieldTone:
		tone, err := models.ParseTone(value)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidTone, value)
		}
		w.input.Tone = tone
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Snapshot returns a deep copy of the input collected so far.
func (w *Wizard) Snapshot() models.InterviewInput {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.input.Clone()
}

// Reset discards all answers and photos and returns to the first step.
// A batch still decoding when Reset is called is dropped on completion.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.step = StepBasics
	w.input = models.InterviewInput{Images: []models.Image{}}
	w.busy = false
	w.epoch++
}

// AttachImages decodes a batch of files and appends them in batch order.
// At most the remaining free slots are taken from the front of the batch;
// the rest is dropped. Files that fail to decode are skipped with a notice.
// The only error is ErrBusy (another batch is in flight) or ctx's error.
func (w *Wizard) AttachImages(ctx context.Context, files []ImageFile) ([]Notice, error) {
	w.mu.Lock()
	if w.busy {
		w.mu.Unlock()
		return nil, ErrBusy
	}
	if len(files) == 0 {
		w.mu.Unlock()
		return nil, nil
	}

	capacity := maxImages - len(w.input.Images)
	if capacity <= 0 {
		w.mu.Unlock()
		metrics.ImagesRejected.WithLabelValues(string(NoticeLimitReached)).Add(float64(len(files)))
		return []Notice{limitReached()}, nil
	}

	var notices []Notice
	accepted := files
	if len(files) > capacity {
		accepted = files[:capacity]
		notices = append(notices, partialBatch(capacity))
		metrics.ImagesRejected.WithLabelValues(string(NoticePartialBatch)).Add(float64(len(files) - capacity))
	}

	w.busy = true
	epoch := w.epoch
	w.mu.Unlock()

	images, errs := w.decodeBatch(ctx, accepted)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.epoch != epoch {
		w.logger.Debug("dropping image batch from before reset", zap.Int("files", len(accepted)))
		return nil, nil
	}
	w.busy = false

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	added := 0
	for i, img := range images {
		if errs[i] != nil {
			notices = append(notices, decodeFailed(accepted[i].Name, errs[i]))
			metrics.ImagesRejected.WithLabelValues(string(NoticeDecodeFailed)).Inc()
			w.logger.Warn("image decode failed", zap.String("file", accepted[i].Name), zap.Error(errs[i]))
			continue
		}
		// Removals during the decode can only have freed slots.
		if len(w.input.Images) >= maxImages {
			break
		}
		w.input.Images = append(w.input.Images, img)
		added++
	}
	metrics.ImagesAccepted.Add(float64(added))

	w.logger.Debug("image batch attached",
		zap.Int("selected", len(files)),
		zap.Int("added", added),
		zap.Int("total", len(w.input.Images)),
	)
	return notices, nil
}

func (w *Wizard) decodeBatch(ctx context.Context, files []ImageFile) ([]models.Image, []error) {
	images := make([]models.Image, len(files))
	errs := make([]error, len(files))

	var g errgroup.Group
	for i, f := range files {
		g.Go(func() error {
			images[i], errs[i] = w.decode(ctx, f)
			return nil
		})
	}
	_ = g.Wait()

	return images, errs
}

func (w *Wizard) decode(ctx context.Context, f ImageFile) (models.Image, error) {
	if err := ctx.Err(); err != nil {
		return models.Image{}, err
	}
	if f.Open == nil {
		return models.Image{}, errors.New("no file content")
	}

	rc, err := f.Open()
	if err != nil {
		return models.Image{}, fmt.Errorf("open: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, w.maxBytes+1))
	if err != nil {
		return models.Image{}, fmt.Errorf("read: %w", err)
	}
	if int64(len(data)) > w.maxBytes {
		return models.Image{}, fmt.Errorf("%w of %d bytes", ErrImageTooLarge, w.maxBytes)
	}
	return models.NewImage(data)
}

// RemoveImage deletes the photo at index, shifting later photos left.
func (w *Wizard) RemoveImage(index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if index < 0 || index >= len(w.input.Images) {
		return fmt.Errorf("%w: %d (have %d)", ErrImageIndexOutOfRange, index, len(w.input.Images))
	}
	w.input.Images = slices.Delete(w.input.Images, index, index+1)
	return nil
}
