package middleware

import (
	"context"
	"net/http"

	"github.com/AdamBeresnev/cochonnet/internal/httputil"
	"github.com/AdamBeresnev/cochonnet/internal/tournament"
	"github.com/go-chi/chi/v5"
)

type ContextKey string

const TreeKey ContextKey = "tree"

type PhaseSource interface {
	Phase() tournament.Phase
}

// RequirePhase2 answers 409 Conflict until phase 2 has started.
func RequirePhase2(src PhaseSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if src.Phase() != tournament.Phase2 {
				httputil.Conflict(w, "Phase 2 has not started", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LoadTree reads the {tree} URL parameter into the request context,
// answering 404 for anything but the winners and consolation brackets.
func LoadTree(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tree := tournament.TreeSelector(chi.URLParam(r, "tree"))
		if tree != tournament.WinnersTree && tree != tournament.ConsolationTree {
			httputil.NotFound(w, "Unknown bracket", nil)
			return
		}
		ctx := context.WithValue(r.Context(), TreeKey, tree)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetTreeFromContext(ctx context.Context) (tournament.TreeSelector, bool) {
	tree, ok := ctx.Value(TreeKey).(tournament.TreeSelector)
	return tree, ok
}
