package routes

import (
	"net/http"

	_ "github.com/oggyb/qr-message-service/internal/docs" // swagger docs
	"github.com/oggyb/qr-message-service/internal/response"
	swaggerHandler "github.com/swaggo/http-swagger"
)

type AppDeps struct {
	Home    HomeHandler
	Message MessageHandler
}

type HomeHandler interface {
	Index(w http.ResponseWriter, r *http.Request)
	Health(w http.ResponseWriter, r *http.Request)
}

type MessageHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	View(w http.ResponseWriter, r *http.Request)
}

func Register(mux *http.ServeMux, d AppDeps) {
	mux.HandleFunc("GET /{$}", d.Home.Index)
	mux.HandleFunc("GET /health", d.Home.Health)

	mux.HandleFunc("POST /api/create", d.Message.Create)
	mux.HandleFunc("GET /api/messages", d.Message.List)
	mux.HandleFunc("DELETE /api/delete/{id}", d.Message.Delete)
	mux.HandleFunc("GET /view/{id}", d.Message.View)

	//Swagger
	mux.HandleFunc("GET /swagger/", swaggerHandler.WrapHandler)

	// Fallback handler for undefined routes (404)
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.RespondError(w, http.StatusNotFound, "route not found")
	}))
}
