package a2a

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/romantic-brand-builder/internal/agent"
	"github.com/BerylCAtieno/romantic-brand-builder/internal/models"
	"github.com/BerylCAtieno/romantic-brand-builder/internal/render"
)

var errNoInterview = errors.New("no interview answers found in message")

type ProfileGenerator interface {
	Generate(ctx context.Context, input models.InterviewInput) (*models.GeneratedProfile, error)
}

type A2AHandler struct {
	generator ProfileGenerator
	timeout   time.Duration
	logger    *zap.Logger
}

func NewA2AHandler(generator ProfileGenerator, timeout time.Duration, logger *zap.Logger) *A2AHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &A2AHandler{
		generator: generator,
		timeout:   timeout,
		logger:    logger.Named("a2a"),
	}
}

// HandleProfile processes A2A messages carrying a completed interview.
func (h *A2AHandler) HandleProfile(c *gin.Context) {
	bodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Error("failed to read request body", zap.Error(err))
		h.sendErrorResponse(c, nil, "Failed to read request body", CodeParseError)
		return
	}

	var rpcReq JSONRPCRequest
	if err := json.Unmarshal(bodyBytes, &rpcReq); err != nil {
		h.logger.Warn("failed to decode JSON-RPC request", zap.Error(err))
		h.sendErrorResponse(c, nil, "Parse error", CodeParseError)
		return
	}

	// Some callers post the message params without the JSON-RPC envelope.
	if rpcReq.JSONRPC == "" && rpcReq.Method == "" {
		h.handleDirectMessage(c, bodyBytes)
		return
	}

	if rpcReq.JSONRPC != "2.0" {
		h.logger.Warn("invalid JSON-RPC version", zap.String("jsonrpc", rpcReq.JSONRPC))
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "message/send", "agent/task":
		h.handleTask(c, rpcReq)
	default:
		h.logger.Warn("unknown method", zap.String("method", rpcReq.Method))
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

func (h *A2AHandler) handleDirectMessage(c *gin.Context, bodyBytes []byte) {
	var msgParams MessageParams
	if err := json.Unmarshal(bodyBytes, &msgParams); err != nil || len(msgParams.Message.Parts) == 0 {
		h.sendErrorResponse(c, nil, "Invalid request format", CodeParseError)
		return
	}

	result := h.runTask(c.Request.Context(), msgParams.Message)
	h.sendSuccessResponse(c, nil, result)
}

func (h *A2AHandler) handleTask(c *gin.Context, rpcReq JSONRPCRequest) {
	var msgParams MessageParams
	if err := json.Unmarshal(rpcReq.Params, &msgParams); err != nil {
		h.logger.Warn("invalid params", zap.Error(err))
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}

	result := h.runTask(c.Request.Context(), msgParams.Message)
	h.sendSuccessResponse(c, rpcReq.ID, result)
}

func (h *A2AHandler) runTask(ctx context.Context, msg A2AMessage) TaskResult {
	taskID := msg.TaskID
	if taskID == "" {
		taskID = uuid.NewString()
	}
	log := h.logger.With(zap.String("task_id", taskID))

	input, err := extractInterview(msg)
	if err != nil {
		log.Info("interview input rejected", zap.Error(err))
		return h.createTaskResult(taskID, StateInputRequired,
			fmt.Sprintf("Please send your interview answers as a data part: %v", err), nil)
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	profile, err := h.generator.Generate(ctx, input)
	if err != nil {
		log.Error("profile generation failed", zap.Error(err))
		return h.createTaskResult(taskID, StateFailed,
			fmt.Sprintf("Failed to generate dating profile: %v", err), nil)
	}

	return h.createSuccessTaskResult(taskID, profile)
}

// extractInterview reads the interview from the first data part, or from a
// text part holding a JSON object.
func extractInterview(msg A2AMessage) (models.InterviewInput, error) {
	var raw []byte
	for _, part := range msg.Parts {
		if part.Kind == "data" && len(part.Data) > 0 {
			raw = part.Data
			break
		}
		if part.Kind == "text" && strings.HasPrefix(strings.TrimSpace(part.Text), "{") {
			raw = []byte(part.Text)
			break
		}
	}
	if raw == nil {
		return models.InterviewInput{}, errNoInterview
	}

	var input models.InterviewInput
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		return models.InterviewInput{}, fmt.Errorf("decode interview: %w", err)
	}
	if input.Images == nil {
		input.Images = []models.Image{}
	}
	if err := input.Validate(); err != nil {
		return models.InterviewInput{}, err
	}
	return input, nil
}

// ServeAgentCard serves the agent card
func (h *A2AHandler) ServeAgentCard(c *gin.Context) {
	if err := agent.LoadAgentCard(); err != nil {
		h.logger.Error("error loading agent card", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Agent card not available"})
		return
	}
	c.Data(http.StatusOK, "application/json", agent.AgentCardData)
}

func (h *A2AHandler) createSuccessTaskResult(taskID string, profile *models.GeneratedProfile) TaskResult {
	text := render.Markdown(profile)

	parts := []MessagePart{TextPart(text)}
	if data, err := DataPart(profile); err == nil {
		parts = append(parts, data)
	} else {
		h.logger.Error("failed to encode profile artifact", zap.Error(err))
	}

	result := h.createTaskResult(taskID, StateCompleted, text, nil)
	result.Artifacts = []Artifact{
		{
			ArtifactID: uuid.NewString(),
			Name:       "Dating Profile",
			Parts:      parts,
		},
	}
	return result
}

func (h *A2AHandler) createTaskResult(taskID, state, text string, artifacts []Artifact) TaskResult {
	return TaskResult{
		ID:   taskID,
		Kind: "task",
		Status: TaskStatus{
			State:     state,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.NewString(),
				TaskID:    taskID,
				Parts:     []MessagePart{TextPart(text)},
			},
		},
		Artifacts: artifacts,
	}
}

func (h *A2AHandler) sendSuccessResponse(c *gin.Context, id any, result TaskResult) {
	h.logger.Info("sending task result",
		zap.String("task_id", result.ID),
		zap.String("state", result.Status.State),
	)
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

// JSON-RPC errors are sent with 200 OK.
func (h *A2AHandler) sendErrorResponse(c *gin.Context, id any, message string, code int) {
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &JSONRPCError{Code: code, Message: message},
	})
}
