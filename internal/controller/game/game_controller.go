package game

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/sketchquiz/internal/dto"
	"github.com/lshigami/sketchquiz/internal/service"
	"github.com/lshigami/sketchquiz/internal/validation"
	"github.com/rs/zerolog/log"
)

const (
	msgPredictionFailed = "Prediction failed. Try again!"
	msgQuestionNotFound = "Question not found"
	msgServerError      = "Server error"
	msgDrawingTooLarge  = "Drawing is too large"
)

// MaxPredictBodyBytes caps a predict request. A full-window PNG drawing in
// base64 stays well below it.
const MaxPredictBodyBytes int64 = 8 << 20

type GameController struct {
	questionService service.QuestionService
	gradingService  service.GradingService
	resultService   service.ResultService

	maxBodyBytes int64
}

func NewGameController(qs service.QuestionService, gs service.GradingService, rs service.ResultService) *GameController {
	return &GameController{
		questionService: qs,
		gradingService:  gs,
		resultService:   rs,
		maxBodyBytes:    MaxPredictBodyBytes,
	}
}

// RegisterRoutes mounts the game API. predictMiddleware runs only in front of
// the predict route, which is the expensive one.
func (c *GameController) RegisterRoutes(router gin.IRouter, predictMiddleware ...gin.HandlerFunc) {
	api := router.Group("/api")
	{
		api.GET("/questions", c.ListQuestions)
		api.POST("/predict", append(predictMiddleware, c.Predict)...)
		api.GET("/results", c.ListResults)
	}
}

// ListQuestions godoc
// @Summary List drawing questions
// @Description Questions a player can be asked to draw. The expected answer is never included.
// @Tags Game
// @Produce json
// @Success 200 {object} dto.QuestionListResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/questions [get]
func (c *GameController) ListQuestions(ctx *gin.Context) {
	questions, err := c.questionService.ListQuestions(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("ListQuestions: service error")
		respondError(ctx, err, msgServerError)
		return
	}
	ctx.JSON(http.StatusOK, dto.QuestionListResponse{Success: true, Questions: questions})
}

// Predict godoc
// @Summary Grade a drawing
// @Description Captions the submitted drawing, compares the caption with the question's expected answer and records the result.
// @Tags Game
// @Accept json
// @Produce json
// @Param submission body dto.PredictRequest true "Base64 PNG, question id and optional username"
// @Success 200 {object} dto.PredictResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 413 {object} dto.ErrorResponse "Drawing is too large"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 500 {object} dto.ErrorResponse "Prediction failed"
// @Router /api/predict [post]
func (c *GameController) Predict(ctx *gin.Context) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxBodyBytes)

	var req dto.PredictRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warn().Int64("limit", tooLarge.Limit).Msg("Predict: request body too large")
			ctx.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{Success: false, Message: msgDrawingTooLarge})
			return
		}
		log.Warn().Err(err).Msg("Predict: invalid request body")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Message: validation.Message(err)})
		return
	}

	log.Info().Str("questionID", req.QuestionID).Str("username", req.Username).Int("imageLength", len(req.ImageData)).Msg("Predict called")

	resp, err := c.gradingService.Predict(ctx.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Str("questionID", req.QuestionID).Msg("Predict: grading failed")
		respondError(ctx, err, msgPredictionFailed)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListResults godoc
// @Summary List graded results
// @Description Results newest first, optionally filtered by username.
// @Tags Game
// @Produce json
// @Param username query string false "Only results of this player"
// @Success 200 {object} dto.ResultListResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/results [get]
func (c *GameController) ListResults(ctx *gin.Context) {
	username := ctx.Query("username")
	results, err := c.resultService.ListResults(ctx.Request.Context(), username)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("ListResults: service error")
		respondError(ctx, err, msgServerError)
		return
	}
	ctx.JSON(http.StatusOK, dto.ResultListResponse{Success: true, Results: results})
}

// respondError maps service errors to the uniform failure envelope. Causes
// of 500s stay in the log and are not echoed to the caller.
func respondError(ctx *gin.Context, err error, fallback string) {
	var validationErr *service.ValidationError
	var inferenceErr *service.InferenceError

	switch {
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Message: validationErr.Error()})
	case errors.Is(err, service.ErrQuestionNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Success: false, Message: msgQuestionNotFound})
	case errors.As(err, &inferenceErr):
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Success: false, Message: msgPredictionFailed})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Success: false, Message: fallback})
	}
}
