package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/easyshopbd/easyshop/internal/blob"
	"github.com/easyshopbd/easyshop/internal/handler"
	"github.com/easyshopbd/easyshop/internal/middleware"
	"github.com/easyshopbd/easyshop/internal/pdf"
	"github.com/easyshopbd/easyshop/internal/store"
)

type Server struct {
	db           *sql.DB
	authH        *handler.AuthHandler
	listH        *handler.ListHandler
	adminH       *handler.AdminHandler
	summaryH     *handler.SummaryHandler
	flowH        *handler.FlowHandler
	profileH     *handler.ProfileHandler
	messageH     *handler.MessageHandler
	commentH     *handler.CommentHandler
	pathwayH     *handler.PathwayHandler
	sessionStore *store.SessionStore
	userStore    *store.UserStore
	rateLimiter  *middleware.RateLimiter
	mediaDir     string
	mediaBaseURL string
	logger       *slog.Logger
}

// New wires the stores and handlers. mediaDir may be empty when uploads
// go to S3 instead of local disk.
func New(db *sql.DB, uploads blob.Store, mediaDir, mediaBaseURL string, renderer *pdf.Renderer, loc *time.Location, logger *slog.Logger) *Server {
	userStore := store.NewUserStore(db)
	sessionStore := store.NewSessionStore(db)
	profileStore := store.NewProfileStore(db)
	listStore := store.NewMarketListStore(db)
	flowStore := store.NewDeliveryFlowStore(db)
	presetStore := store.NewPresetStore(db)
	noticeStore := store.NewNoticeStore(db)
	messageStore := store.NewMessageStore(db)
	commentStore := store.NewCommentStore(db)
	pathwayStore := store.NewPathwayStore(db)

	return &Server{
		db:           db,
		authH:        handler.NewAuthHandler(userStore, profileStore, sessionStore, logger.With("component", "auth")),
		listH:        handler.NewListHandler(listStore, logger.With("component", "list")),
		adminH:       handler.NewAdminHandler(listStore, profileStore, flowStore, loc, logger.With("component", "admin")),
		summaryH:     handler.NewSummaryHandler(listStore, profileStore, renderer, loc, logger.With("component", "summary")),
		flowH:        handler.NewFlowHandler(flowStore, presetStore, noticeStore, logger.With("component", "flow")),
		profileH:     handler.NewProfileHandler(userStore, profileStore, listStore, uploads, logger.With("component", "profile")),
		messageH:     handler.NewMessageHandler(messageStore, profileStore, uploads, logger.With("component", "message")),
		commentH:     handler.NewCommentHandler(commentStore, listStore, logger.With("component", "comment")),
		pathwayH:     handler.NewPathwayHandler(pathwayStore, uploads, logger.With("component", "pathway")),
		sessionStore: sessionStore,
		userStore:    userStore,
		rateLimiter:  middleware.NewRateLimiter(),
		mediaDir:     mediaDir,
		mediaBaseURL: mediaBaseURL,
		logger:       logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /api/register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /api/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("POST /api/management/login", s.rateLimitedHandler(s.authH.ManagementLogin))
	outerMux.HandleFunc("GET /health", s.healthHandler)
	if s.mediaDir != "" {
		outerMux.Handle("GET "+s.mediaBaseURL+"/", http.StripPrefix(s.mediaBaseURL+"/", http.FileServer(http.Dir(s.mediaDir))))
	}

	// Protected routes, wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	// Staff routes nest one level deeper behind RequireStaff
	staffMux := http.NewServeMux()
	s.registerStaffRoutes(staffMux)
	protectedMux.Handle("/api/management/", middleware.RequireStaff(staffMux))

	authMiddleware := middleware.RequireAuth(s.sessionStore, s.userStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/logout", s.authH.Logout)

	// Market lists (family side)
	mux.HandleFunc("POST /api/lists", s.listH.Submit)
	mux.HandleFunc("GET /api/lists", s.listH.Mine)
	mux.HandleFunc("GET /api/lists/{id}", s.listH.Get)
	mux.HandleFunc("PUT /api/lists/{id}", s.listH.Update)
	mux.HandleFunc("DELETE /api/lists/{id}", s.listH.Delete)

	// Per-list comment threads
	mux.HandleFunc("GET /api/lists/{id}/comments", s.commentH.List)
	mux.HandleFunc("POST /api/lists/{id}/comments", s.commentH.Add)

	// Own profile
	mux.HandleFunc("GET /api/profile", s.profileH.Me)
	mux.HandleFunc("PUT /api/profile", s.profileH.UpdateMe)
	mux.HandleFunc("POST /api/profile/avatar", s.profileH.UploadAvatar)

	// Messaging (family side: own thread with staff)
	mux.HandleFunc("GET /api/messages", s.messageH.Thread)
	mux.HandleFunc("POST /api/messages", s.messageH.Send)
	mux.HandleFunc("GET /api/messages/unread-count", s.messageH.UnreadCount)

	// Site-wide notice
	mux.HandleFunc("GET /api/notice", s.flowH.Notice)
}

func (s *Server) registerStaffRoutes(mux *http.ServeMux) {
	// Dashboard and list management
	mux.HandleFunc("GET /api/management/dashboard", s.adminH.Dashboard)
	mux.HandleFunc("PUT /api/management/lists/{id}", s.adminH.Edit)
	mux.HandleFunc("DELETE /api/management/lists/{id}", s.adminH.Delete)
	mux.HandleFunc("POST /api/management/lists/{id}/approve", s.adminH.Approve)
	mux.HandleFunc("POST /api/management/lists/{id}/decline", s.adminH.Decline)
	mux.HandleFunc("POST /api/management/lists/{id}/deliver", s.adminH.Deliver)
	mux.HandleFunc("POST /api/management/lists/{id}/restore", s.adminH.Restore)
	mux.HandleFunc("POST /api/management/lists/{id}/revert-pending", s.adminH.RevertPending)
	mux.HandleFunc("POST /api/management/lists/{id}/organize", s.adminH.Organize)
	mux.HandleFunc("PUT /api/management/lists/{id}/note", s.adminH.SetNote)
	mux.HandleFunc("POST /api/management/lists/note", s.adminH.BulkNote)

	// Reporting and exports
	mux.HandleFunc("GET /api/management/summary", s.summaryH.DateSummary)
	mux.HandleFunc("GET /api/management/summary/pdf", s.summaryH.DateSummaryPDF)
	mux.HandleFunc("GET /api/management/consolidated", s.summaryH.Consolidated)
	mux.HandleFunc("GET /api/management/consolidated/pdf", s.summaryH.ConsolidatedPDF)
	mux.HandleFunc("GET /api/management/entry/user-view", s.summaryH.EntryUserView)
	mux.HandleFunc("GET /api/management/entry/consolidated", s.summaryH.EntryConsolidated)
	mux.HandleFunc("GET /api/management/entry/consolidated/pdf", s.summaryH.EntryConsolidatedPDF)

	// Delivery flow rules, presets and notice
	mux.HandleFunc("GET /api/management/delivery-flows", s.flowH.Flows)
	mux.HandleFunc("PUT /api/management/delivery-flows", s.flowH.SaveFlows)
	mux.HandleFunc("GET /api/management/presets", s.flowH.Presets)
	mux.HandleFunc("PUT /api/management/presets", s.flowH.SavePresets)
	mux.HandleFunc("PUT /api/management/notice", s.flowH.SetNotice)

	// Family directory and trash
	mux.HandleFunc("GET /api/management/users", s.profileH.Directory)
	mux.HandleFunc("GET /api/management/users/{id}", s.profileH.UserDetail)
	mux.HandleFunc("PUT /api/management/users/{id}", s.profileH.UpdateUser)
	mux.HandleFunc("POST /api/management/users/{id}/delete", s.profileH.SoftDelete)
	mux.HandleFunc("POST /api/management/users/{id}/restore", s.profileH.Restore)
	mux.HandleFunc("DELETE /api/management/users/{id}", s.profileH.Permanent)
	mux.HandleFunc("PUT /api/management/users/{id}/delivery-path", s.profileH.SetDeliveryPath)

	// Messaging (staff side: inbox plus any family's thread)
	mux.HandleFunc("GET /api/management/messages", s.messageH.Inbox)
	mux.HandleFunc("GET /api/management/messages/{id}", s.messageH.Thread)
	mux.HandleFunc("POST /api/management/messages/{id}", s.messageH.Send)

	// Delivery pathway photo albums
	mux.HandleFunc("GET /api/management/pathways", s.pathwayH.List)
	mux.HandleFunc("POST /api/management/pathways/images", s.pathwayH.Upload)
	mux.HandleFunc("PUT /api/management/pathways/images/{id}", s.pathwayH.ReplaceImage)
	mux.HandleFunc("PUT /api/management/pathways/images/{id}/note", s.pathwayH.SetImageNote)
	mux.HandleFunc("DELETE /api/management/pathways/images/{id}", s.pathwayH.DeleteImage)
}
