package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kingsubin/soob/internal/domain/enums"
	accountssvc "github.com/kingsubin/soob/internal/services/accounts"
	attachmentssvc "github.com/kingsubin/soob/internal/services/attachments"
	authsvc "github.com/kingsubin/soob/internal/services/auth"
	commentssvc "github.com/kingsubin/soob/internal/services/comments"
	heartssvc "github.com/kingsubin/soob/internal/services/hearts"
	postssvc "github.com/kingsubin/soob/internal/services/posts"
	"github.com/kingsubin/soob/internal/transport/http/handlers"
)

type Dependencies struct {
	AccountService    *accountssvc.Service
	AuthService       *authsvc.Service
	AuthInterceptor   *authsvc.Interceptor
	PostService       *postssvc.Service
	CommentService    *commentssvc.Service
	HeartService      *heartssvc.Service
	AttachmentService *attachmentssvc.Service
	Logger            *zap.Logger
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	accountHandler := handlers.NewAccountHandler(deps.AccountService, deps.AuthService)
	postHandler := handlers.NewPostHandler(deps.PostService, deps.AccountService)
	commentHandler := handlers.NewCommentHandler(deps.CommentService, deps.AccountService)
	heartHandler := handlers.NewHeartHandler(deps.HeartService, deps.AccountService)
	attachmentHandler := handlers.NewAttachmentHandler(deps.AttachmentService, deps.AccountService)

	authMW := deps.AuthInterceptor.Middleware()
	principalMW := RequirePrincipal()
	verifiedMW := RequireAuthority(
		string(enums.RoleLevel1),
		string(enums.RoleLevel2),
		string(enums.RoleLevel3),
		string(enums.RoleManager),
		string(enums.RoleAdmin),
	)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/api/v1", func(r chi.Router) {
		// Every request passes the interceptor; failures degrade to anonymous.
		r.Use(authMW)

		r.Post("/auth/login", accountHandler.Login)
		r.Post("/auth/logout", accountHandler.Logout)

		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", accountHandler.Signup)
			r.Get("/check-email", accountHandler.CheckEmail)
			r.Get("/check-nickname", accountHandler.CheckNickname)
			r.Post("/verification-email", accountHandler.SendVerificationEmail)
			r.Get("/verify/{key}", accountHandler.VerifyEmail)
			r.Post("/temp-password", accountHandler.SendTempPassword)

			r.Route("/me", func(r chi.Router) {
				r.Use(principalMW)
				r.Get("/", accountHandler.Me)
				r.Patch("/nickname", accountHandler.UpdateNickname)
				r.Patch("/password", accountHandler.UpdatePassword)
				r.Patch("/profile-image", accountHandler.UpdateProfileImage)
				r.Delete("/", accountHandler.Delete)
			})
		})

		r.Get("/boards", postHandler.Boards)
		r.Route("/boards/{boardID}/posts", func(r chi.Router) {
			r.Get("/", postHandler.List)
			r.With(principalMW, verifiedMW).Post("/", postHandler.Create)
		})

		r.Route("/posts/{postID}", func(r chi.Router) {
			r.Get("/", postHandler.Get)
			r.With(principalMW, verifiedMW).Put("/", postHandler.Update)
			r.With(principalMW, verifiedMW).Delete("/", postHandler.Delete)

			r.Get("/comments", commentHandler.ListByPost)
			r.With(principalMW, verifiedMW).Post("/comments", commentHandler.Create)

			r.With(principalMW, verifiedMW).Put("/heart", heartHandler.HeartPost)
			r.With(principalMW, verifiedMW).Delete("/heart", heartHandler.UnheartPost)
		})

		r.Route("/comments/{commentID}", func(r chi.Router) {
			r.With(principalMW, verifiedMW).Put("/", commentHandler.Update)
			r.With(principalMW, verifiedMW).Delete("/", commentHandler.Delete)

			r.With(principalMW, verifiedMW).Put("/heart", heartHandler.HeartComment)
			r.With(principalMW, verifiedMW).Delete("/heart", heartHandler.UnheartComment)
		})

		r.Route("/attachments", func(r chi.Router) {
			r.With(principalMW, verifiedMW).Post("/", attachmentHandler.Upload)
			r.Get("/{attachmentID}/url", attachmentHandler.DownloadURL)
			r.With(principalMW, verifiedMW).Delete("/{attachmentID}", attachmentHandler.Delete)
		})
	})
}
