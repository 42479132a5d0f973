package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/laakri/DevCollab/internal/services"
	"github.com/laakri/DevCollab/internal/services/dto"
)

type LearningPostHandler struct {
	*BaseHandler
	postService services.LearningPostService
}

func NewLearningPostHandler(base *BaseHandler, postService services.LearningPostService) *LearningPostHandler {
	return &LearningPostHandler{
		BaseHandler: base,
		postService: postService,
	}
}

func (h *LearningPostHandler) RegisterRoutes(r *gin.RouterGroup) {
	posts := r.Group("/learning-posts")
	posts.Use(h.RequireAuth())
	{
		posts.POST("", h.Create)
		posts.GET("", h.List)
		posts.GET("/my-posts", h.MyPosts)
		posts.GET("/matches", h.Matches)
		posts.GET("/:id", h.Get)
		posts.PUT("/:id", h.Update)
		posts.DELETE("/:id", h.Delete)
	}
}

func (h *LearningPostHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateLearningPostRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	post, err := h.postService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// List returns every post, or with ?interests=a,b only the posts that
// teach or seek one of them.
func (h *LearningPostHandler) List(c *gin.Context) {
	db := h.GetDB(c)

	if _, filtered := c.GetQuery("interests"); filtered {
		posts, err := h.postService.FindByInterests(db, ParseQueryList(c, "interests"))
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, posts)
		return
	}

	posts, err := h.postService.FindAll(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *LearningPostHandler) MyPosts(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	posts, err := h.postService.FindByUser(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *LearningPostHandler) Matches(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	posts, err := h.postService.FindMatches(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *LearningPostHandler) Get(c *gin.Context) {
	id, err := ParseUUIDParam(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	post, err := h.postService.FindOne(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *LearningPostHandler) Update(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	id, err := ParseUUIDParam(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateLearningPostRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	post, err := h.postService.Update(h.GetDB(c), id, actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *LearningPostHandler) Delete(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	id, err := ParseUUIDParam(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.postService.Delete(h.GetDB(c), id, actor); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Learning post deleted"})
}
