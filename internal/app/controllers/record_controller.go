package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/atauni/internal/app/models/dto"
	"github.com/yigit/atauni/internal/app/services"
	"github.com/yigit/atauni/internal/middleware"
)

// RecordController handles the grade and attendance ledgers
type RecordController struct {
	gradeService      services.GradeService
	attendanceService services.AttendanceService
	logger            zerolog.Logger
}

// NewRecordController creates a new RecordController
func NewRecordController(gradeService services.GradeService, attendanceService services.AttendanceService, logger zerolog.Logger) *RecordController {
	return &RecordController{
		gradeService:      gradeService,
		attendanceService: attendanceService,
		logger:            logger,
	}
}

// ListGrades returns the grades of a student
// @Summary List student grades
// @Tags grades
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Grade}
// @Router /students/{id}/grades [get]
func (c *RecordController) ListGrades(ctx *gin.Context) {
	grades, err := c.gradeService.ListByStudent(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(grades, ""))
}

// CreateGrade adds a grade entry and recalculates the student's gpa
// @Summary Add grade
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateGradeRequest true "Grade"
// @Success 201 {object} dto.APIResponse{data=models.Grade}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/grades [post]
func (c *RecordController) CreateGrade(ctx *gin.Context) {
	var req dto.CreateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	grade, err := c.gradeService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(grade, "Grade added"))
}

// UpdateGrade patches a grade entry
// @Summary Update grade
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Grade ID"
// @Param request body dto.UpdateGradeRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Grade}
// @Router /students/grades/{id} [put]
func (c *RecordController) UpdateGrade(ctx *gin.Context) {
	var req dto.UpdateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	grade, err := c.gradeService.Update(ctx.Request.Context(), ctx.Param("id"), req.ToPatch())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(grade, "Grade updated"))
}

// DeleteGrade removes a grade entry
// @Summary Delete grade
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param id path string true "Grade ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /students/grades/{id} [delete]
func (c *RecordController) DeleteGrade(ctx *gin.Context) {
	if err := c.gradeService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Grade deleted"}, ""))
}

// ListAttendance returns the attendance entries of a student
// @Summary List student attendance
// @Tags attendance
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Attendance}
// @Router /students/{id}/attendance [get]
func (c *RecordController) ListAttendance(ctx *gin.Context) {
	entries, err := c.attendanceService.ListByStudent(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(entries, ""))
}

// CreateAttendance adds an attendance entry
// @Summary Add attendance
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAttendanceRequest true "Attendance"
// @Success 201 {object} dto.APIResponse{data=models.Attendance}
// @Failure 400 {object} dto.ErrorResponse "Total hours is zero"
// @Router /students/attendance [post]
func (c *RecordController) CreateAttendance(ctx *gin.Context) {
	var req dto.CreateAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	entry, err := c.attendanceService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(entry, "Attendance added"))
}

// UpdateAttendance patches an attendance entry
// @Summary Update attendance
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attendance ID"
// @Param request body dto.UpdateAttendanceRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Attendance}
// @Router /students/attendance/{id} [put]
func (c *RecordController) UpdateAttendance(ctx *gin.Context) {
	var req dto.UpdateAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	entry, err := c.attendanceService.Update(ctx.Request.Context(), ctx.Param("id"), req.ToPatch())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(entry, "Attendance updated"))
}

// DeleteAttendance removes an attendance entry
// @Summary Delete attendance
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attendance ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /students/attendance/{id} [delete]
func (c *RecordController) DeleteAttendance(ctx *gin.Context) {
	if err := c.attendanceService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Attendance deleted"}, ""))
}
