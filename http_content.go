package auth

import (
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// RegisterContentRoutes mounts the content and dashboard endpoints. Every
// route requires a valid bearer token.
func RegisterContentRoutes[T any](app router.Router[T], opts ...ContentControllerOption) {
	controller := NewContentController(opts...)

	protected := controller.Auther.ProtectedRoute(
		controller.Cfg,
		controller.Auther.MakeAPIAuthErrorHandler(false),
	)

	app.Post(controller.Routes.Content, controller.Create, protected).
		SetName("content.create")
	app.Get(controller.Routes.Content, controller.List, protected).
		SetName("content.list")
	app.Get(controller.Routes.Content+"/:id", controller.Show, protected).
		SetName("content.show")
	app.Delete(controller.Routes.Content+"/:id", controller.Delete, protected).
		SetName("content.delete")

	app.Get(controller.Routes.Dashboard+"/stats", controller.DashboardStats, protected).
		SetName("dashboard.stats")
	app.Get(controller.Routes.Dashboard+"/recent-content", controller.DashboardRecentContent, protected).
		SetName("dashboard.recent")
}

type ContentControllerRoutes struct {
	Content   string
	Dashboard string
}

type ContentController struct {
	Logger       Logger
	Repo         RepositoryManager
	Routes       *ContentControllerRoutes
	Auther       HTTPAuthenticator
	Cfg          Config
	Processor    TextProcessor
	ErrorHandler router.ErrorHandler
}

type ContentControllerOption func(*ContentController) *ContentController

func NewContentController(opts ...ContentControllerOption) *ContentController {
	c := &ContentController{
		Logger: defLogger{},
		Routes: &ContentControllerRoutes{
			Content:   "/content",
			Dashboard: "/dashboard",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in content controller...")
	}

	if c.Auther == nil {
		panic("Missing HTTPAuthenticator in content controller...")
	}

	if c.Cfg == nil {
		panic("Missing Config in content controller...")
	}

	if c.ErrorHandler == nil {
		if ra, ok := c.Auther.(*RouteAuthenticator); ok {
			c.ErrorHandler = ra.ErrorHandler
		} else {
			c.ErrorHandler = func(ctx router.Context, err error) error {
				return ctx.JSON(http.StatusInternalServerError, map[string]any{
					"error": map[string]any{"message": err.Error()},
				})
			}
		}
	}

	return c
}

func (a *ContentController) WithLogger(logger Logger) *ContentController {
	if logger != nil {
		a.Logger = logger
	}
	return a
}

// CreateContentPayload is the document creation payload.
type CreateContentPayload struct {
	Title string `form:"title" json:"title"`
	Body  string `form:"body" json:"body"`
	Type  string `form:"type" json:"type"`
}

// Validate will validate the payload
func (r CreateContentPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&r.Body, validation.Required),
		validation.Field(&r.Type, validation.Required, validation.In(
			ContentTypeDocument,
			ContentTypeSummarize,
			ContentTypeAnalyze,
			ContentTypeExtract,
			ContentTypeTranslate,
		)),
	)
}

func (a *ContentController) Create(ctx router.Context) error {
	userID, err := a.requestUserID(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	payload := new(CreateContentPayload)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("content create parse payload", "error", err)
		return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryBadInput, "Error parsing body"))
	}

	if err := payload.Validate(); err != nil {
		return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryValidation, "Invalid content payload"))
	}

	record := &Content{
		UserID: userID,
		Title:  payload.Title,
		Body:   payload.Body,
		Type:   payload.Type,
	}

	// Processing is best effort. A processor outage degrades the document to
	// unprocessed rather than failing the request.
	if a.Processor != nil && IsProcessableType(payload.Type) {
		res, err := a.Processor.Process(ctx.Context(), ProcessRequest{
			Text:   payload.Body,
			Type:   payload.Type,
			UserID: userID.String(),
		})
		if err != nil {
			a.Logger.Warn("content processing failed", "type", payload.Type, "error", err)
			record.AddMetadata("processing_error", err.Error())
		} else {
			record.ProcessedResult = res.Result
			for k, v := range res.Metadata {
				record.AddMetadata(k, v)
			}
		}
	}

	created, err := a.Repo.Contents().Create(ctx.Context(), record)
	if err != nil {
		a.Logger.Error("content create", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, created)
}

func (a *ContentController) List(ctx router.Context) error {
	userID, err := a.requestUserID(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	records, err := a.Repo.Contents().ListByUser(ctx.Context(), userID, 0)
	if err != nil {
		a.Logger.Error("content list", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	if records == nil {
		records = []*Content{}
	}

	return ctx.JSON(http.StatusOK, records)
}

func (a *ContentController) Show(ctx router.Context) error {
	userID, err := a.requestUserID(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return a.ErrorHandler(ctx, errors.New("invalid content id", errors.CategoryBadInput))
	}

	record, err := a.Repo.Contents().GetByIDForUser(ctx.Context(), id, userID)
	if err != nil {
		if errors.IsNotFound(err) {
			return a.ErrorHandler(ctx, errors.New("content not found", errors.CategoryNotFound))
		}
		a.Logger.Error("content show", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(http.StatusOK, record)
}

func (a *ContentController) Delete(ctx router.Context) error {
	userID, err := a.requestUserID(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return a.ErrorHandler(ctx, errors.New("invalid content id", errors.CategoryBadInput))
	}

	if err := a.Repo.Contents().DeleteByIDForUser(ctx.Context(), id, userID); err != nil {
		if errors.IsNotFound(err) {
			return a.ErrorHandler(ctx, errors.New("content not found", errors.CategoryNotFound))
		}
		a.Logger.Error("content delete", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"deleted": id,
	})
}

// DashboardStats reports aggregate numbers for the authenticated user.
// TODO: replace the placeholder aggregates with real queries once the
// reporting tables land.
func (a *ContentController) DashboardStats(ctx router.Context) error {
	if _, err := a.requestUserID(ctx); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"totalContent":   15,
		"processedItems": 12,
		"lastActivity":   time.Now().UTC().Format(time.RFC3339),
	})
}

// DashboardRecentContent lists placeholder recent activity entries.
func (a *ContentController) DashboardRecentContent(ctx router.Context) error {
	if _, err := a.requestUserID(ctx); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	now := time.Now().UTC()
	return ctx.JSON(http.StatusOK, []map[string]any{
		{
			"id":        "1",
			"title":     "Sample Document 1",
			"type":      "document",
			"createdAt": now.Format(time.RFC3339),
		},
		{
			"id":        "2",
			"title":     "Analysis Report",
			"type":      "report",
			"createdAt": now.Add(-24 * time.Hour).Format(time.RFC3339),
		},
	})
}

// requestUserID resolves the authenticated user from the verified claims the
// middleware stored in the router context.
func (a *ContentController) requestUserID(ctx router.Context) (uuid.UUID, error) {
	session, err := GetRouterSession(ctx, a.Cfg.GetContextKey())
	if err != nil {
		return uuid.Nil, err
	}

	uid, err := session.GetUserUUID()
	if err != nil {
		return uuid.Nil, ErrUnableToDecodeSession
	}

	return uid, nil
}
