package chat

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"asana-chatbot/internal/bot"
	"asana-chatbot/internal/model"
	pkgResponse "asana-chatbot/pkg/response"
)

// messageRequest is the inbound chat webhook payload.
type messageRequest struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Text     string `json:"text"`
}

// HandleMessage processes one chat message and replies synchronously.
func (h *handler) HandleMessage(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.l.Errorf(ctx, "chat.delivery.HandleMessage: failed to read body: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	signature := c.GetHeader("X-Chat-Signature-256")
	if err := h.security.ValidateSignature(body, signature); err != nil {
		h.l.Errorf(ctx, "chat.delivery.HandleMessage: signature verification failed: %v", err)
		pkgResponse.Unauthorized(c)
		return
	}

	if err := h.security.ValidateIPAddress(c.Request); err != nil {
		h.l.Warnf(ctx, "chat.delivery.HandleMessage: %v", err)
		pkgResponse.Unauthorized(c)
		return
	}

	var req messageRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.l.Errorf(ctx, "chat.delivery.HandleMessage: invalid payload: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}
	if req.UserID == "" {
		pkgResponse.Error(c, errors.New("user_id is required"), nil)
		return
	}

	if err := h.security.CheckRateLimit(req.UserID); err != nil {
		h.l.Warnf(ctx, "chat.delivery.HandleMessage: %v", err)
		pkgResponse.TooManyRequests(c)
		return
	}

	sc := model.Scope{UserID: req.UserID, Username: req.Username}
	out, err := h.uc.HandleMessage(ctx, sc, bot.MessageInput{Text: req.Text})
	if err != nil {
		h.l.Errorf(ctx, "chat.delivery.HandleMessage: %v", err)
		pkgResponse.InternalError(c, err)
		return
	}

	pkgResponse.OK(c, gin.H{"reply": out.Reply})
}

// HandleOAuthCallback finishes the OAuth flow started from a connect message.
// It renders a plain-text page for the user's browser, not a JSON envelope.
func (h *handler) HandleOAuthCallback(c *gin.Context) {
	ctx := c.Request.Context()

	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		c.String(http.StatusBadRequest, "Authorization failed: missing code or state.")
		return
	}

	input := bot.AuthCallbackInput{Code: code, State: state}
	if err := h.uc.CompleteAuthorization(ctx, input); err != nil {
		h.l.Errorf(ctx, "chat.delivery.HandleOAuthCallback: %v", err)
		c.String(http.StatusBadRequest, "Authorization failed. Please try connecting again.")
		return
	}

	c.String(http.StatusOK, "Asana connected. You can close this tab and return to the chat.")
}
