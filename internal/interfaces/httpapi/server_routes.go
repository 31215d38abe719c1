package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/courses", handler.ListCourses)
	mux.HandleFunc("GET /v1/courses/{courseID}/tees", handler.ListTeesByCourse)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedRoundRoutes(mux, handler, verifier)
	registerAuthorizedFeedRoutes(mux, handler, verifier)
}

func registerAuthorizedRoundRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/rounds", RequireAuth(verifier, http.HandlerFunc(handler.CreateRound)))
	mux.Handle("GET /v1/rounds", RequireAuth(verifier, http.HandlerFunc(handler.ListRounds)))
	mux.Handle("GET /v1/rounds/{roundID}", RequireAuth(verifier, http.HandlerFunc(handler.GetRound)))
	mux.Handle("PUT /v1/rounds/{roundID}/course", RequireAuth(verifier, http.HandlerFunc(handler.SetCourseSelection)))
	mux.Handle("POST /v1/rounds/{roundID}/participants", RequireAuth(verifier, http.HandlerFunc(handler.AddParticipant)))
	mux.Handle("DELETE /v1/rounds/{roundID}/participants/{participantID}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveParticipant)))
	mux.Handle("POST /v1/rounds/{roundID}/start", RequireAuth(verifier, http.HandlerFunc(handler.StartRound)))
	mux.Handle("POST /v1/rounds/{roundID}/scores", RequireAuth(verifier, http.HandlerFunc(handler.RecordScore)))
	mux.Handle("POST /v1/rounds/{roundID}/finish", RequireAuth(verifier, http.HandlerFunc(handler.FinishRound)))
	mux.Handle("DELETE /v1/rounds/{roundID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteDraftRound)))
}

func registerAuthorizedFeedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/feed", RequireAuth(verifier, http.HandlerFunc(handler.ListFeed)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/feed-backfill", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunFeedBackfillJob)))
}
