package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/oidcguard/claims"
	"github.com/kbukum/oidcguard/errors"
	"github.com/kbukum/oidcguard/logger"
	"github.com/kbukum/oidcguard/observability"
	"github.com/kbukum/oidcguard/policy"
	"github.com/kbukum/oidcguard/provider"
	"github.com/kbukum/oidcguard/server/middleware"
)

// ValidatePath is the route of the validation endpoint.
const ValidatePath = "/v1/validate"

// ClaimsValidator verifies a token for a provider. *provider.Dispatcher
// implements it.
type ClaimsValidator interface {
	ValidateClaims(p provider.IdentityProvider, token string) (claims.Schema, error)
}

// ValidateRequest is the body of POST /v1/validate. Provider is a selector
// (decimal or 0x-hex, string or number) or a provider name. Token may be
// omitted when an Authorization: Bearer header is sent.
type ValidateRequest struct {
	Provider *provider.IdentityProvider `json:"provider" binding:"required"`
	Token    string                     `json:"token"`
}

// ValidateResponse is the success body of POST /v1/validate.
type ValidateResponse struct {
	Email    string                    `json:"email"`
	Nonce    string                    `json:"nonce"`
	Provider provider.IdentityProvider `json:"provider"`
}

// ValidateHandler serves POST /v1/validate.
type ValidateHandler struct {
	Service   string
	Validator ClaimsValidator
	// Policy runs after verification for the providers it applies to. Nil
	// disables it.
	Policy  *policy.Checker
	Metrics *observability.Metrics
	Log     *logger.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Register mounts the handler on engine.
func (h *ValidateHandler) Register(engine *gin.Engine) {
	engine.POST(ValidatePath, h.Handle)
}

// Handle validates the token in the request.
func (h *ValidateHandler) Handle(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			RespondWithError(c, appErr)
			return
		}
		RespondWithError(c, errors.InvalidInput("body", err.Error()))
		return
	}

	token := req.Token
	if token == "" {
		token = bearerToken(c.GetHeader("Authorization"))
	}
	if token == "" {
		RespondWithError(c, errors.InvalidInput("token", "token is required"))
		return
	}

	p := *req.Provider
	requestID := c.GetHeader(middleware.HeaderRequestID)
	oc := observability.NewOperationContext(h.Service, "validate", requestID, h.Metrics)
	ctx, span := oc.Start(c.Request.Context(), p.String())

	cl, err := h.Validator.ValidateClaims(p, token)
	if err == nil && h.Policy.AppliesTo(p.String()) {
		err = h.Policy.Check(cl, h.now())
	}
	oc.End(ctx, span, p.String(), err)

	if err != nil {
		h.logger().WithRequestID(requestID).Info("validation failed", logger.Fields(
			logger.FieldProvider, p.String(),
			logger.FieldErrorCode, string(errors.CodeOf(err)),
		))
		RespondWithError(c, err)
		return
	}

	id := cl.Identity()
	c.JSON(http.StatusOK, ValidateResponse{Email: id.Email, Nonce: id.Nonce, Provider: p})
}

func (h *ValidateHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *ValidateHandler) logger() *logger.Logger {
	if h.Log != nil {
		return h.Log
	}
	return logger.WithComponent("validate")
}

// bearerToken returns the token of an "Authorization: Bearer <token>" header.
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
