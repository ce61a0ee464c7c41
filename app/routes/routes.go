package routes

import (
	"net/http"

	"soapbox/app/controllers"
	"soapbox/app/middleware"
	"soapbox/app/moderation"
	"soapbox/app/repositories"
	"soapbox/app/services"

	"github.com/gorilla/mux"
)

// Setup wires repositories, the classifier, services and controllers into
// the application's router.
func Setup(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, classifier moderation.Classifier) *mux.Router {
	postService := services.NewPostService(postRepo, commentRepo)
	commentService := services.NewCommentService(commentRepo, postRepo, classifier)

	postController := controllers.NewPostController(postService)
	commentController := controllers.NewCommentController(commentService)

	router := mux.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.CORS)
	router.Use(middleware.ContentTypeJSON)

	// Posts
	router.HandleFunc("/posts/", postController.Index).Methods(http.MethodGet)
	router.HandleFunc("/posts/", postController.Create).Methods(http.MethodPost)
	router.HandleFunc("/posts/", postController.Options).Methods(http.MethodOptions)
	router.HandleFunc("/posts/{id:[0-9]+}/", postController.Show).Methods(http.MethodGet)
	router.HandleFunc("/posts/{id:[0-9]+}/", postController.Options).Methods(http.MethodOptions)

	// Comments
	router.HandleFunc("/comments/", commentController.Create).Methods(http.MethodPost)
	router.HandleFunc("/comments/", commentController.Options).Methods(http.MethodOptions)
	router.HandleFunc("/comments/flagged/", commentController.Flagged).Methods(http.MethodGet)
	router.HandleFunc("/comments/flagged/", commentController.Options).Methods(http.MethodOptions)

	return router
}

// StartServer starts the HTTP server on the specified address with the given router.
func StartServer(addr string, router http.Handler) error {
	return http.ListenAndServe(addr, router)
}
