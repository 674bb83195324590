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

type InterviewHandler struct {
	interviewUC domain.InterviewUsecase
}

// NewInterviewHandler registers interview routes
func NewInterviewHandler(r *gin.RouterGroup, interviewUC domain.InterviewUsecase) {
	handler := &InterviewHandler{interviewUC: interviewUC}

	writeLimit := middleware.RateLimitMiddleware(middleware.WriteRateLimitConfig())

	interviews := r.Group("/interviews")
	{
		interviews.POST("", writeLimit, handler.Schedule)
		interviews.POST("/reminders/send", writeLimit, handler.SendReminders)
		interviews.GET("/:id", handler.GetByID)
		interviews.GET("/application/:applicationId", handler.GetByApplication)
		interviews.GET("/jobseeker/:userId", handler.GetByJobSeeker)
		interviews.GET("/jobseeker/:userId/upcoming", handler.GetUpcomingByJobSeeker)
		interviews.GET("/recruiter/:recruiterId", handler.GetByRecruiter)
		interviews.GET("/recruiter/:recruiterId/upcoming", handler.GetUpcomingByRecruiter)
		interviews.GET("/recruiter/:recruiterId/stats", handler.GetRecruiterStats)
		interviews.PUT("/:id", writeLimit, handler.Update)
		interviews.DELETE("/:id", writeLimit, handler.Cancel)
	}
}

// Schedule godoc
// @Summary      Schedule an interview
// @Description  Schedules an interview against an application. The interview is stored SCHEDULED regardless of any inbound status; afterwards the application's status is pushed to INTERVIEW_SCHEDULED on a best-effort basis.
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        body  body      domain.ScheduleInterviewInput  true  "Interview data"
// @Success      201   {object}  response.Response{data=domain.Interview}
// @Failure      400   {object}  response.Response
// @Router       /interviews [post]
func (h *InterviewHandler) Schedule(c *gin.Context) {
	var req domain.ScheduleInterviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.InvalidInterview(err.Error()))
		return
	}

	iv, err := h.interviewUC.Schedule(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Interview scheduled successfully", iv)
}

// GetByID godoc
// @Summary      Get an interview by id
// @Tags         interviews
// @Produce      json
// @Param        id   path      int  true  "Interview ID"
// @Success      200  {object}  response.Response{data=domain.Interview}
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id} [get]
func (h *InterviewHandler) GetByID(c *gin.Context) {
	id, ok := h.parseInterviewID(c)
	if !ok {
		return
	}
	iv, err := h.interviewUC.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview retrieved", iv)
}

func (h *InterviewHandler) parseInterviewID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid interview ID"))
		return 0, false
	}
	return id, true
}

// GetByApplication godoc
// @Summary      List interviews for an application
// @Tags         interviews
// @Produce      json
// @Param        applicationId  path      string  true  "Application ID"
// @Success      200            {object}  response.Response{data=[]domain.Interview}
// @Router       /interviews/application/{applicationId} [get]
func (h *InterviewHandler) GetByApplication(c *gin.Context) {
	interviews, err := h.interviewUC.GetByApplicationID(c.Request.Context(), c.Param("applicationId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interviews retrieved", interviews)
}

// GetByJobSeeker godoc
// @Summary      List interviews for a job seeker
// @Tags         interviews
// @Produce      json
// @Param        userId  path      string  true  "Job seeker user ID"
// @Success      200     {object}  response.Response{data=[]domain.Interview}
// @Router       /interviews/jobseeker/{userId} [get]
func (h *InterviewHandler) GetByJobSeeker(c *gin.Context) {
	interviews, err := h.interviewUC.GetByJobSeekerID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interviews retrieved", interviews)
}

// GetUpcomingByJobSeeker godoc
// @Summary      List a job seeker's upcoming interviews
// @Description  Active (SCHEDULED or RESCHEDULED) interviews with a future date, soonest first.
// @Tags         interviews
// @Produce      json
// @Param        userId  path      string  true  "Job seeker user ID"
// @Success      200     {object}  response.Response{data=[]domain.Interview}
// @Router       /interviews/jobseeker/{userId}/upcoming [get]
func (h *InterviewHandler) GetUpcomingByJobSeeker(c *gin.Context) {
	interviews, err := h.interviewUC.GetUpcomingByJobSeekerID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Upcoming interviews retrieved", interviews)
}

// GetByRecruiter godoc
// @Summary      List interviews held by a recruiter
// @Tags         interviews
// @Produce      json
// @Param        recruiterId  path      string  true  "Recruiter ID"
// @Success      200          {object}  response.Response{data=[]domain.Interview}
// @Router       /interviews/recruiter/{recruiterId} [get]
func (h *InterviewHandler) GetByRecruiter(c *gin.Context) {
	interviews, err := h.interviewUC.GetByRecruiterID(c.Request.Context(), c.Param("recruiterId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interviews retrieved", interviews)
}

// GetUpcomingByRecruiter godoc
// @Summary      List a recruiter's upcoming interviews
// @Tags         interviews
// @Produce      json
// @Param        recruiterId  path      string  true  "Recruiter ID"
// @Success      200          {object}  response.Response{data=[]domain.Interview}
// @Router       /interviews/recruiter/{recruiterId}/upcoming [get]
func (h *InterviewHandler) GetUpcomingByRecruiter(c *gin.Context) {
	interviews, err := h.interviewUC.GetUpcomingByRecruiterID(c.Request.Context(), c.Param("recruiterId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Upcoming interviews retrieved", interviews)
}

// GetRecruiterStats godoc
// @Summary      Aggregate a recruiter's interviews by status
// @Tags         interviews
// @Produce      json
// @Param        recruiterId  path      string  true  "Recruiter ID"
// @Success      200          {object}  response.Response{data=domain.InterviewStats}
// @Router       /interviews/recruiter/{recruiterId}/stats [get]
func (h *InterviewHandler) GetRecruiterStats(c *gin.Context) {
	stats, err := h.interviewUC.GetRecruiterStats(c.Request.Context(), c.Param("recruiterId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview stats retrieved", stats)
}

// Update godoc
// @Summary      Update an interview
// @Description  Partial update of a non-final interview. A changed scheduled date forces status RESCHEDULED, overriding any status in the same body.
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "Interview ID"
// @Param        body  body      domain.InterviewPatch  true  "Fields to update"
// @Success      200   {object}  response.Response{data=domain.Interview}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /interviews/{id} [put]
func (h *InterviewHandler) Update(c *gin.Context) {
	id, ok := h.parseInterviewID(c)
	if !ok {
		return
	}

	var patch domain.InterviewPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.InvalidInterview(err.Error()))
		return
	}

	iv, err := h.interviewUC.Update(c.Request.Context(), id, patch)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview updated successfully", iv)
}

// Cancel godoc
// @Summary      Cancel an interview
// @Tags         interviews
// @Produce      json
// @Param        id   path      int  true  "Interview ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id} [delete]
func (h *InterviewHandler) Cancel(c *gin.Context) {
	id, ok := h.parseInterviewID(c)
	if !ok {
		return
	}
	if err := h.interviewUC.Cancel(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview cancelled successfully", nil)
}

// SendReminders godoc
// @Summary      Send interview reminders
// @Description  Emits a reminder for every SCHEDULED interview inside the next 24 hours. Meant to be hit by an external scheduler (e.g. daily cron); the service keeps no internal clock and no sent-marker, so invocation frequency controls re-sends.
// @Tags         interviews
// @Produce      json
// @Success      200  {object}  response.Response{data=int}
// @Router       /interviews/reminders/send [post]
func (h *InterviewHandler) SendReminders(c *gin.Context) {
	sent, err := h.interviewUC.SendReminders(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview reminders sent", sent)
}
