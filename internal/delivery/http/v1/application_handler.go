package v1

import (
	"net/http"
	"strconv"

	"go-jobify-backend/internal/delivery/http/middleware"
	"go-jobify-backend/internal/delivery/http/response"
	"go-jobify-backend/internal/domain"
	"go-jobify-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	writeLimit := middleware.RateLimitMiddleware(middleware.WriteRateLimitConfig())

	applications := r.Group("/applications")
	{
		applications.POST("", writeLimit, handler.Create)
		applications.GET("", handler.GetAll)
		applications.GET("/check-duplicate", handler.CheckDuplicate)
		applications.GET("/:id", handler.GetByID)
		applications.GET("/joboffer/:jobOfferId", handler.GetByJobOffer)
		applications.GET("/jobseeker/:jobSeekerId", handler.GetByJobSeeker)
		applications.PATCH("/:id", writeLimit, handler.UpdatePartial)
		applications.PATCH("/:id/status", writeLimit, handler.UpdateStatus)
		applications.PATCH("/:id/ai-score", writeLimit, handler.UpdateAiScore)
		applications.DELETE("/:id", writeLimit, handler.Delete)
	}
}

// Create godoc
// @Summary      Submit an application
// @Description  Create an application for a job offer. Both the job seeker and the job offer are validated against their owning services before the write; any validation failure, including the remote service being down, rejects the request.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body  body      domain.CreateApplicationInput  true  "Application data"
// @Success      201   {object}  response.Response{data=domain.Application}
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /applications [post]
func (h *ApplicationHandler) Create(c *gin.Context) {
	var req domain.CreateApplicationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	app, err := h.applicationUC.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted successfully", app)
}

// GetAll godoc
// @Summary      List all applications
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Router       /applications [get]
func (h *ApplicationHandler) GetAll(c *gin.Context) {
	applications, err := h.applicationUC.GetAll(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// GetByID godoc
// @Summary      Get an application by id
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.Application}
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [get]
func (h *ApplicationHandler) GetByID(c *gin.Context) {
	app, err := h.applicationUC.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application retrieved", app)
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid " + name))
		return 0, false
	}
	return id, true
}

// GetByJobOffer godoc
// @Summary      List applications for a job offer
// @Tags         applications
// @Produce      json
// @Param        jobOfferId  path      int  true  "Job offer ID"
// @Success      200         {object}  response.Response{data=[]domain.Application}
// @Router       /applications/joboffer/{jobOfferId} [get]
func (h *ApplicationHandler) GetByJobOffer(c *gin.Context) {
	jobOfferID, ok := parseID(c, "jobOfferId")
	if !ok {
		return
	}
	applications, err := h.applicationUC.GetByJobOfferID(c.Request.Context(), jobOfferID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// GetByJobSeeker godoc
// @Summary      List applications submitted by a job seeker
// @Tags         applications
// @Produce      json
// @Param        jobSeekerId  path      int  true  "Job seeker ID"
// @Success      200          {object}  response.Response{data=[]domain.Application}
// @Router       /applications/jobseeker/{jobSeekerId} [get]
func (h *ApplicationHandler) GetByJobSeeker(c *gin.Context) {
	jobSeekerID, ok := parseID(c, "jobSeekerId")
	if !ok {
		return
	}
	applications, err := h.applicationUC.GetByJobSeekerID(c.Request.Context(), jobSeekerID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// UpdatePartial godoc
// @Summary      Partially update an application
// @Description  Applies only the fields present in the body; absent fields are left untouched. A present status also stamps last_status_change.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "Application ID"
// @Param        body  body      domain.ApplicationPatch  true  "Fields to update"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      404   {object}  response.Response
// @Router       /applications/{id} [patch]
func (h *ApplicationHandler) UpdatePartial(c *gin.Context) {
	var patch domain.ApplicationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	if patch.Status != nil {
		if _, err := domain.ParseApplicationStatus(string(*patch.Status)); err != nil {
			c.Error(apperror.BadRequest(err.Error()))
			return
		}
	}

	app, err := h.applicationUC.UpdatePartial(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application updated", app)
}

// UpdateStatusRequest is the payload for a status change
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus godoc
// @Summary      Update an application's status
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Application ID"
// @Param        body  body      UpdateStatusRequest  true  "New status"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      404   {object}  response.Response
// @Router       /applications/{id}/status [patch]
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	status, err := domain.ParseApplicationStatus(req.Status)
	if err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	app, err := h.applicationUC.UpdateStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application status updated", app)
}

// UpdateAiScoreRequest is the payload for recording an AI ranking score
type UpdateAiScoreRequest struct {
	AiScore float64 `json:"ai_score" binding:"required"`
}

// UpdateAiScore godoc
// @Summary      Record the AI ranking score
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Application ID"
// @Param        body  body      UpdateAiScoreRequest  true  "Score"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      404   {object}  response.Response
// @Router       /applications/{id}/ai-score [patch]
func (h *ApplicationHandler) UpdateAiScore(c *gin.Context) {
	var req UpdateAiScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	app, err := h.applicationUC.UpdateAiScore(c.Request.Context(), c.Param("id"), req.AiScore)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "AI score updated", app)
}

// Delete godoc
// @Summary      Delete an application
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [delete]
func (h *ApplicationHandler) Delete(c *gin.Context) {
	if err := h.applicationUC.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application deleted", nil)
}

// CheckDuplicate godoc
// @Summary      Check whether an application already exists
// @Description  Side-effect-free probe for the (jobOfferId, jobSeekerId) pair so clients can pre-empt a failing create.
// @Tags         applications
// @Produce      json
// @Param        jobOfferId   query     int  true  "Job offer ID"
// @Param        jobSeekerId  query     int  true  "Job seeker ID"
// @Success      200          {object}  response.Response{data=bool}
// @Router       /applications/check-duplicate [get]
func (h *ApplicationHandler) CheckDuplicate(c *gin.Context) {
	jobOfferID, err := strconv.ParseInt(c.Query("jobOfferId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid jobOfferId"))
		return
	}
	jobSeekerID, err := strconv.ParseInt(c.Query("jobSeekerId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid jobSeekerId"))
		return
	}

	exists, err := h.applicationUC.CheckDuplicate(c.Request.Context(), jobOfferID, jobSeekerID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Duplicate check completed", exists)
}
