package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/laakri/DevCollab/internal/logger"
	"github.com/laakri/DevCollab/internal/services"
	"github.com/laakri/DevCollab/internal/services/dto"
)

type SessionHandler struct {
	*BaseHandler
	sessionService services.SessionService
}

func NewSessionHandler(base *BaseHandler, sessionService services.SessionService) *SessionHandler {
	return &SessionHandler{
		BaseHandler:    base,
		sessionService: sessionService,
	}
}

func (h *SessionHandler) RegisterRoutes(r *gin.RouterGroup) {
	sessions := r.Group("/sessions")
	sessions.Use(h.RequireAuth())
	{
		sessions.POST("", h.Create)
		sessions.GET("", h.List)
		sessions.GET("/status", h.ByStatus)
		sessions.GET("/host/:hostId", h.ByHost)
		sessions.GET("/participant/:participantId", h.ByParticipant)
		sessions.GET("/:id", h.Get)
		sessions.PUT("/:id", h.Update)
		sessions.DELETE("/:id", h.Delete)
	}
}

func (h *SessionHandler) Create(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.CreateSessionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	session, err := h.sessionService.Create(h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	logger.CtxInfo(c.Request.Context(), "Session scheduled",
		"session_id", session.ID, "host_id", session.HostID, "participant_id", session.ParticipantID)
	c.JSON(http.StatusCreated, session)
}

func (h *SessionHandler) List(c *gin.Context) {
	sessions, err := h.sessionService.FindAll(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (h *SessionHandler) ByStatus(c *gin.Context) {
	var query dto.SessionStatusQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	sessions, err := h.sessionService.FindByStatus(h.GetDB(c), query.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (h *SessionHandler) ByHost(c *gin.Context) {
	hostID, err := ParseUUIDParam(c, "hostId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	sessions, err := h.sessionService.FindByHost(h.GetDB(c), hostID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (h *SessionHandler) ByParticipant(c *gin.Context) {
	participantID, err := ParseUUIDParam(c, "participantId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	sessions, err := h.sessionService.FindByParticipant(h.GetDB(c), participantID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (h *SessionHandler) Get(c *gin.Context) {
	id, err := ParseUUIDParam(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	session, err := h.sessionService.FindOne(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *SessionHandler) Update(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	id, err := ParseUUIDParam(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateSessionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	session, err := h.sessionService.Update(h.GetDB(c), id, actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *SessionHandler) Delete(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	id, err := ParseUUIDParam(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.sessionService.Delete(h.GetDB(c), id, actor); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	logger.CtxInfo(c.Request.Context(), "Session deleted", "session_id", id)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Session deleted"})
}
