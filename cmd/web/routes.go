package main

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/AdamBeresnev/cochonnet/internal/httputil"
	"github.com/AdamBeresnev/cochonnet/internal/middleware"
	"github.com/AdamBeresnev/cochonnet/internal/schedule"
	"github.com/AdamBeresnev/cochonnet/internal/service"
	"github.com/AdamBeresnev/cochonnet/internal/tournament"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// writeError maps domain errors onto status codes.
func writeError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, tournament.ErrEmptyName),
		errors.Is(err, tournament.ErrDuplicateName),
		errors.Is(err, tournament.ErrAmbiguousTeam),
		errors.Is(err, tournament.ErrInvalidMatches),
		errors.Is(err, schedule.ErrTooFewTeams),
		errors.Is(err, schedule.ErrTooManyRounds),
		errors.Is(err, schedule.ErrInvalidRoundCount):
		httputil.BadRequest(w, err.Error(), err)
	case errors.Is(err, tournament.ErrTeamNotFound),
		errors.Is(err, tournament.ErrNodeNotFound),
		errors.Is(err, tournament.ErrUnknownTree),
		errors.Is(err, schedule.ErrMatchNotFound),
		errors.Is(err, sql.ErrNoRows):
		httputil.NotFound(w, msg, err)
	case errors.Is(err, tournament.ErrRosterLocked),
		errors.Is(err, tournament.ErrPhase1NotStarted),
		errors.Is(err, tournament.ErrPhase2NotStarted),
		errors.Is(err, tournament.ErrPhase2Started):
		httputil.Conflict(w, err.Error(), err)
	default:
		httputil.InternalServerError(w, msg, err)
	}
}

func newRouter(svc *service.TournamentService) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	writeOverview := func(w http.ResponseWriter, status int) {
		overview, err := svc.Overview()
		if err != nil {
			httputil.InternalServerError(w, "Failed to read tournament", err)
			return
		}
		httputil.WriteJSON(w, status, overview)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/tournament", func(w http.ResponseWriter, r *http.Request) {
			writeOverview(w, http.StatusOK)
		})

		r.Put("/tournament/settings", func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				Name    string `json:"name"`
				Matches int    `json:"matches"`
			}
			if err := httputil.DecodeJSON(r, &body); err != nil {
				httputil.BadRequest(w, "Invalid settings", err)
				return
			}
			if err := svc.UpdateSettings(body.Name, body.Matches); err != nil {
				writeError(w, "Failed to update settings", err)
				return
			}
			writeOverview(w, http.StatusOK)
		})

		r.Route("/teams", func(r chi.Router) {
			r.Post("/", func(w http.ResponseWriter, r *http.Request) {
				var body struct {
					Name string `json:"name"`
				}
				if err := httputil.DecodeJSON(r, &body); err != nil {
					httputil.BadRequest(w, "Invalid team", err)
					return
				}
				team, err := svc.AddTeam(body.Name)
				if err != nil {
					writeError(w, "Failed to add team", err)
					return
				}
				httputil.WriteJSON(w, http.StatusCreated, team)
			})

			r.Post("/import", func(w http.ResponseWriter, r *http.Request) {
				var body struct {
					Line string `json:"line"`
				}
				if err := httputil.DecodeJSON(r, &body); err != nil {
					httputil.BadRequest(w, "Invalid team list", err)
					return
				}
				teams, err := svc.ImportTeams(body.Line)
				if err != nil {
					writeError(w, "Failed to import teams", err)
					return
				}
				httputil.WriteJSON(w, http.StatusCreated, teams)
			})

			r.Get("/search", func(w http.ResponseWriter, r *http.Request) {
				team, err := svc.FindTeam(r.URL.Query().Get("q"))
				if err != nil {
					writeError(w, "Team not found", err)
					return
				}
				httputil.WriteJSON(w, http.StatusOK, team)
			})

			r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
				id, err := strconv.Atoi(chi.URLParam(r, "id"))
				if err != nil {
					httputil.BadRequest(w, "Invalid team ID", err)
					return
				}
				if err := svc.RemoveTeam(id); err != nil {
					writeError(w, "Team not found", err)
					return
				}
				w.WriteHeader(http.StatusNoContent)
			})
		})

		r.Route("/phase1", func(r chi.Router) {
			r.Post("/start", func(w http.ResponseWriter, r *http.Request) {
				if err := svc.StartPhase1(); err != nil {
					writeError(w, "Failed to start phase 1", err)
					return
				}
				writeOverview(w, http.StatusOK)
			})

			r.Put("/rounds/{round}/matches/{match}", func(w http.ResponseWriter, r *http.Request) {
				round, err := strconv.Atoi(chi.URLParam(r, "round"))
				if err != nil {
					httputil.BadRequest(w, "Invalid round", err)
					return
				}
				match, err := strconv.Atoi(chi.URLParam(r, "match"))
				if err != nil {
					httputil.BadRequest(w, "Invalid match", err)
					return
				}
				var body struct {
					ScoreA *int `json:"scoreA"`
					ScoreB *int `json:"scoreB"`
				}
				if err := httputil.DecodeJSON(r, &body); err != nil {
					httputil.BadRequest(w, "Invalid score", err)
					return
				}
				if err := svc.SetMatchScore(round, match, body.ScoreA, body.ScoreB); err != nil {
					writeError(w, "Match not found", err)
					return
				}
				w.WriteHeader(http.StatusNoContent)
			})

			r.Get("/ranking", func(w http.ResponseWriter, r *http.Request) {
				httputil.WriteJSON(w, http.StatusOK, svc.Ranking())
			})
		})

		r.Route("/phase2", func(r chi.Router) {
			r.Post("/start", func(w http.ResponseWriter, r *http.Request) {
				if err := svc.StartPhase2(); err != nil {
					writeError(w, "Failed to start phase 2", err)
					return
				}
				writeOverview(w, http.StatusOK)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePhase2(svc))
				r.Use(middleware.LoadTree)

				r.Get("/{tree}", func(w http.ResponseWriter, r *http.Request) {
					tree, _ := middleware.GetTreeFromContext(r.Context())
					root, err := svc.Bracket(tree)
					if err != nil {
						writeError(w, "Failed to get bracket", err)
						return
					}
					httputil.WriteJSON(w, http.StatusOK, root)
				})

				r.Post("/{tree}/winner", func(w http.ResponseWriter, r *http.Request) {
					tree, _ := middleware.GetTreeFromContext(r.Context())
					var body struct {
						NodeID      string `json:"nodeId"`
						WinnerIndex *int   `json:"winnerIndex"`
					}
					if err := httputil.DecodeJSON(r, &body); err != nil {
						httputil.BadRequest(w, "Invalid winner", err)
						return
					}
					if body.WinnerIndex == nil || (*body.WinnerIndex != 0 && *body.WinnerIndex != 1) {
						httputil.BadRequest(w, "winnerIndex must be 0 or 1", nil)
						return
					}
					if err := svc.SetWinner(tree, body.NodeID, *body.WinnerIndex); err != nil {
						writeError(w, "Match not found", err)
						return
					}
					root, err := svc.Bracket(tree)
					if err != nil {
						writeError(w, "Failed to get bracket", err)
						return
					}
					httputil.WriteJSON(w, http.StatusOK, root)
				})

				r.Get("/{tree}/diagram", func(w http.ResponseWriter, r *http.Request) {
					tree, _ := middleware.GetTreeFromContext(r.Context())
					grid, err := svc.Diagram(tree)
					if err != nil {
						writeError(w, "Failed to lay out bracket", err)
						return
					}
					httputil.WriteJSON(w, http.StatusOK, grid)
				})

				r.Get("/{tree}/text", func(w http.ResponseWriter, r *http.Request) {
					tree, _ := middleware.GetTreeFromContext(r.Context())
					text, err := svc.Text(tree)
					if err != nil {
						writeError(w, "Failed to draw bracket", err)
						return
					}
					w.Header().Set("Content-Type", "text/plain; charset=utf-8")
					w.Write([]byte(text + "\n"))
				})
			})
		})

		r.With(middleware.RequirePhase2(svc)).Get("/results", func(w http.ResponseWriter, r *http.Request) {
			results, err := svc.Results()
			if err != nil {
				writeError(w, "Failed to get results", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, results)
		})

		r.Route("/backups", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				backups, err := svc.ListBackups(r.Context())
				if err != nil {
					httputil.InternalServerError(w, "Failed to list backups", err)
					return
				}
				httputil.WriteJSON(w, http.StatusOK, backups)
			})

			r.Post("/", func(w http.ResponseWriter, r *http.Request) {
				backup, err := svc.SaveBackup(r.Context())
				if err != nil {
					httputil.InternalServerError(w, "Failed to save backup", err)
					return
				}
				httputil.WriteJSON(w, http.StatusCreated, backup)
			})

			r.Post("/{id}/restore", func(w http.ResponseWriter, r *http.Request) {
				id, err := uuid.Parse(chi.URLParam(r, "id"))
				if err != nil {
					httputil.BadRequest(w, "Invalid backup ID", err)
					return
				}
				if err := svc.RestoreBackup(r.Context(), id); err != nil {
					writeError(w, "Backup not found", err)
					return
				}
				writeOverview(w, http.StatusOK)
			})

			r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
				id, err := uuid.Parse(chi.URLParam(r, "id"))
				if err != nil {
					httputil.BadRequest(w, "Invalid backup ID", err)
					return
				}
				if err := svc.DeleteBackup(r.Context(), id); err != nil {
					writeError(w, "Backup not found", err)
					return
				}
				w.WriteHeader(http.StatusNoContent)
			})
		})
	})

	return r
}
