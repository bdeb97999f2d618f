package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerGameRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	// The literal segment wins over {gameID} in ServeMux precedence.
	mux.Handle("GET /v1/games/overview", RequireAuth(verifier, http.HandlerFunc(handler.GetOverview)))
	mux.Handle("GET /v1/games/{gameID}", RequireAuth(verifier, http.HandlerFunc(handler.GetGame)))
	mux.Handle("GET /v1/games/{gameID}/events", RequireAuth(verifier, http.HandlerFunc(handler.ListGameEvents)))
	mux.Handle("GET /v1/teams/{teamID}/games/overview", RequireAuth(verifier, http.HandlerFunc(handler.GetTeamOverview)))
}
