package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bharat-properties/intake-cli/internal/archive"
	"github.com/bharat-properties/intake-cli/internal/model"
	"github.com/bharat-properties/intake-cli/internal/parser"
	"github.com/bharat-properties/intake-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the webhook server for parse requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		s, err := openStore(ctx)
		if err != nil {
			return eris.Wrap(err, "open store")
		}
		defer s.Close() //nolint:errcheck

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Post("/webhook/parse", handleParse(s))
		r.Post("/webhook/import", handleImport(s))
		r.Get("/deals", handleListDeals(s))

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func handleParse(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text   string `json:"text"`
			Source string `json:"source"`
			Save   bool   `json:"save"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Text == "" {
			writeError(w, http.StatusBadRequest, "text is required")
			return
		}
		if req.Source == "" {
			req.Source = sourcePaste
		}

		ctx := r.Context()
		p := parser.New(resolveRuleSet(ctx, "", false),
			parser.WithConcurrency(cfg.Parser.MaxConcurrentSegments))

		deals, err := p.Parse(ctx, req.Text)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "parse failed")
			return
		}
		kept := filterByScore(deals, cutoffFor(req.Source))

		if req.Save && len(kept) > 0 {
			if _, err := s.SaveDeals(ctx, req.Source, kept); err != nil {
				zap.L().Error("save parsed deals failed", zap.Error(err))
				writeError(w, http.StatusInternalServerError, "save failed")
				return
			}
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"deals": kept,
			"count": len(kept),
		})
	}
}

func handleImport(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Archive string `json:"archive"`
			Name    string `json:"name"`
			Save    bool   `json:"save"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Archive == "" {
			writeError(w, http.StatusBadRequest, "archive payload is required")
			return
		}

		ctx := r.Context()
		msgs, err := archive.ReadArchiveBase64(req.Archive)
		if err != nil {
			zap.L().Warn("archive ingestion failed", zap.Error(err))
			writeError(w, http.StatusUnprocessableEntity, "archive could not be read: "+eris.Cause(err).Error())
			return
		}

		p := parser.New(resolveRuleSet(ctx, "", false),
			parser.WithConcurrency(cfg.Parser.MaxConcurrentSegments))

		var deals []model.ParsedDeal
		for _, msg := range msgs {
			parsed, err := p.Parse(ctx, msg.Content)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "parse failed")
				return
			}
			deals = append(deals, parsed...)
		}
		kept := filterByScore(deals, cutoffFor(sourceArchive))

		if req.Save {
			name := req.Name
			if name == "" {
				name = "webhook-archive"
			}
			batch, err := s.CreateBatch(ctx, name, len(msgs))
			if err == nil {
				err = s.SaveMessages(ctx, batch.ID, msgs)
			}
			if err == nil {
				_, err = s.SaveDeals(ctx, sourceArchive, kept)
			}
			if err != nil {
				zap.L().Error("save import failed", zap.Error(err))
				writeError(w, http.StatusInternalServerError, "save failed")
				return
			}
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"messages": len(msgs),
			"deals":    kept,
			"count":    len(kept),
		})
	}
}

func handleListDeals(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		minScore, _ := strconv.Atoi(q.Get("min_score"))
		limit, _ := strconv.Atoi(q.Get("limit"))

		deals, err := s.ListDeals(r.Context(), store.DealFilter{
			Intent:   model.Intent(q.Get("intent")),
			Category: model.Category(q.Get("category")),
			Source:   q.Get("source"),
			MinScore: minScore,
			Limit:    limit,
		})
		if err != nil {
			zap.L().Error("list deals failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "list failed")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"deals": deals,
			"count": len(deals),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
