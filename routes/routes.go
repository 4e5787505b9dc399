package routes

import (
	"net/http"

	"bulletin/app/controllers"
	"bulletin/app/middleware"
	"bulletin/app/moderation"
	"bulletin/app/repositories"
	"bulletin/app/services"
	"bulletin/app/storage"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Setup wires the repositories, services, and controllers over the
// given Badger DB and returns the configured router.
func Setup(db *badger.DB, scorer moderation.Scorer, blobs storage.BlobStore, staticDir, corsOrigin string) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.CORS(corsOrigin))
	router.Use(middleware.Metrics)

	userRepo := repositories.NewBadgerUserRepository(db)
	postRepo := repositories.NewBadgerPostRepository(db)
	commentRepo := repositories.NewBadgerCommentRepository(db)

	postService := services.NewPostService(postRepo, commentRepo, userRepo, scorer)
	userService := services.NewUserService(userRepo, postRepo, commentRepo)

	postController := controllers.NewPostController(postService, blobs)
	userController := controllers.NewUserController(userService)

	// Posts endpoints
	posts := router.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("", postController.Create).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")
	posts.HandleFunc("/{postId:[0-9]+}/comments", postController.CreateComment).Methods("POST")

	// Users endpoints
	users := router.PathPrefix("/users").Subrouter()
	users.HandleFunc("/signup", userController.Signup).Methods("POST")
	users.HandleFunc("/login", userController.Login).Methods("POST")
	users.HandleFunc("/{id:[0-9]+}", userController.Update).Methods("PATCH")
	users.HandleFunc("/{id:[0-9]+}", userController.Delete).Methods("DELETE")
	users.HandleFunc("/{id:[0-9]+}/password", userController.UpdatePassword).Methods("PUT")

	// Operational endpoints
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Serve static files, including the default post thumbnail
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	// Preflight requests must match a route for the middleware chain to
	// run; the CORS middleware answers them before this handler is hit.
	router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	return router
}

// StartServer starts the HTTP server on the specified address with the
// given router.
func StartServer(addr string, router http.Handler) error {
	return http.ListenAndServe(addr, router)
}
