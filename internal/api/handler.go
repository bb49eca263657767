package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/romantic-brand-builder/internal/interview"
	"github.com/BerylCAtieno/romantic-brand-builder/internal/models"
	"github.com/BerylCAtieno/romantic-brand-builder/internal/render"
	"github.com/BerylCAtieno/romantic-brand-builder/internal/session"
)

const maxResultWait = time.Minute

// SessionHandler exposes interview sessions over REST.
type SessionHandler struct {
	store  *session.Store
	logger *zap.Logger
}

func NewSessionHandler(store *session.Store, logger *zap.Logger) *SessionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionHandler{store: store, logger: logger.Named("api")}
}

type stepView struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Last     bool   `json:"last"`
}

type answersView struct {
	Name          string      `json:"name"`
	Age           string      `json:"age"`
	Gender        string      `json:"gender"`
	Profession    string      `json:"profession"`
	Hobbies       string      `json:"hobbies"`
	Vibe          string      `json:"vibe"`
	TargetPartner string      `json:"targetPartner"`
	Tone          models.Tone `json:"tone"`
}

type imageSummary struct {
	Index     int    `json:"index"`
	MediaType string `json:"mediaType"`
	Bytes     int    `json:"bytes"`
}

// SessionState is the full view of one session returned by every endpoint.
type SessionState struct {
	ID         string                   `json:"id"`
	Step       stepView                 `json:"step"`
	Busy       bool                     `json:"busy"`
	CanAdvance bool                     `json:"canAdvance"`
	Answers    answersView              `json:"answers"`
	Images     []imageSummary           `json:"images"`
	Status     session.Status           `json:"status"`
	Error      string                   `json:"error,omitempty"`
	Result     *models.GeneratedProfile `json:"result,omitempty"`
}

func stateOf(s *session.Session) SessionState {
	w := s.Wizard()
	step := w.Step()
	in := w.Snapshot()

	images := make([]imageSummary, len(in.Images))
	for i, img := range in.Images {
		images[i] = imageSummary{Index: i, MediaType: img.MediaType, Bytes: len(img.Data)}
	}

	state := SessionState{
		ID: s.ID,
		Step: stepView{
			Index:    int(step),
			Name:     step.String(),
			Title:    step.Title(),
			Subtitle: step.Subtitle(),
			Last:     step == interview.LastStep,
		},
		Busy:       w.Busy(),
		CanAdvance: s.CanAdvance(),
		Answers: answersView{
			Name:          in.Name,
			Age:           in.Age,
			Gender:        in.Gender,
			Profession:    in.Profession,
			Hobbies:       in.Hobbies,
			Vibe:          in.Vibe,
			TargetPartner: in.TargetPartner,
			Tone:          in.Tone,
		},
		Images: images,
		Status: s.Status(),
	}
	if result, err := s.Result(); err == nil {
		state.Result = result
	} else if state.Status == session.StatusFailed {
		state.Error = err.Error()
	}
	return state
}

func (h *SessionHandler) session(c *gin.Context) (*session.Session, bool) {
	s, err := h.store.Get(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return nil, false
	}
	return s, true
}

// CreateSession handles POST /api/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	s := h.store.Create()
	c.JSON(http.StatusCreated, stateOf(s))
}

// GetSession handles GET /api/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, stateOf(s))
}

// DeleteSession handles DELETE /api/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if _, ok := h.session(c); !ok {
		return
	}
	h.store.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

type setFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// SetField handles PATCH /api/sessions/:id/fields
func (h *SessionHandler) SetField(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req setFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := s.Wizard().SetField(interview.Field(req.Field), req.Value); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stateOf(s))
}

// AttachImages handles POST /api/sessions/:id/images with multipart
// "images" files.
func (h *SessionHandler) AttachImages(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Expected multipart form with images", err)
		return
	}
	headers := form.File["images"]
	if len(headers) == 0 {
		respondError(c, http.StatusBadRequest, "No images provided", nil)
		return
	}

	files := make([]interview.ImageFile, len(headers))
	for i, fh := range headers {
		files[i] = interview.ImageFile{
			Name: fh.Filename,
			Open: func() (io.ReadCloser, error) { return fh.Open() },
		}
	}

	notices, err := s.Wizard().AttachImages(c.Request.Context(), files)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if notices == nil {
		notices = []interview.Notice{}
	}
	c.JSON(http.StatusOK, gin.H{"notices": notices, "state": stateOf(s)})
}

// RemoveImage handles DELETE /api/sessions/:id/images/:index
func (h *SessionHandler) RemoveImage(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Image index must be an integer", err)
		return
	}
	if err := s.Wizard().RemoveImage(index); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stateOf(s))
}

// Advance handles POST /api/sessions/:id/advance. Advancing from the last
// step submits the interview and answers 202 while the profile generates.
func (h *SessionHandler) Advance(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	submitted, err := s.Advance()
	if err != nil {
		respondDomainError(c, err)
		return
	}

	status := http.StatusOK
	if submitted {
		h.logger.Info("interview submitted", zap.String("session_id", s.ID))
		status = http.StatusAccepted
	}
	c.JSON(status, stateOf(s))
}

// Retreat handles POST /api/sessions/:id/retreat
func (h *SessionHandler) Retreat(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Retreat()
	c.JSON(http.StatusOK, stateOf(s))
}

// Restart handles POST /api/sessions/:id/restart
func (h *SessionHandler) Restart(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Restart()
	c.JSON(http.StatusOK, stateOf(s))
}

// GetResult handles GET /api/sessions/:id/result.
//
// Query parameters: view (identity, bios, photos, prompts; default all),
// format (json or markdown; default json) and wait, a duration to block
// for an in-flight generation.
func (h *SessionHandler) GetResult(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var view render.View
	if v := c.Query("view"); v != "" {
		parsed, err := render.ParseView(v)
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error(), err)
			return
		}
		view = parsed
	}

	format := c.DefaultQuery("format", "json")
	if format != "json" && format != "markdown" {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("unknown format %q", format), nil)
		return
	}

	if w := c.Query("wait"); w != "" {
		d, err := time.ParseDuration(w)
		if err != nil || d < 0 {
			respondError(c, http.StatusBadRequest, "wait must be a non-negative duration", err)
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), min(d, maxResultWait))
		_ = s.Wait(ctx)
		cancel()
	}

	profile, err := s.Result()
	if err != nil {
		respondDomainError(c, err)
		return
	}

	if format == "markdown" {
		text := render.Markdown(profile)
		if view != "" {
			text = render.Section(profile, view)
		}
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(text))
		return
	}

	switch view {
	case render.ViewIdentity:
		c.JSON(http.StatusOK, profile.BrandIdentity)
	case render.ViewBios:
		c.JSON(http.StatusOK, profile.Bios)
	case render.ViewPhotos:
		c.JSON(http.StatusOK, profile.PhotoAdvice)
	case render.ViewPrompts:
		c.JSON(http.StatusOK, profile.Optimization)
	default:
		c.JSON(http.StatusOK, profile)
	}
}

// ListTones handles GET /api/tones
func ListTones(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tones": models.Tones()})
}
