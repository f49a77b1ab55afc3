package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"league-recon/internal/config"
	"league-recon/internal/fileio"
	"league-recon/internal/resolve/model"
	resSvc "league-recon/internal/resolve/service"
)

// Resolve matches an uploaded source export against a target export and
// returns the confirmed / needs-review / unmatched split. With apply=true
// the confirmed mappings are persisted through the sink.
//
// Multipart fields: files "source" and "target"; per-side column mapping
// (source_name, source_id, source_origin, source_header_row, repeated
// source_ext "system=column", same with target_ prefix); engine knobs
// (auto_threshold, review_threshold, weak_threshold, include_weak,
// accept_above, apply).
func Resolve(cfg config.Config, logger zerolog.Logger, sink resSvc.Sink) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := reqLogger(logger, r)

		defer r.Body.Close()
		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}

		src, err := readSide(r, "source")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		tgt, err := readSide(r, "target")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		t := cfg.Thresholds()
		opt := model.Options{
			Thresholds: model.Thresholds{
				Auto:   toFloat(r.FormValue("auto_threshold"), t.Auto),
				Review: toFloat(r.FormValue("review_threshold"), t.Review),
				Weak:   toFloat(r.FormValue("weak_threshold"), t.Weak),
			},
			Nicknames:   model.DefaultNicknames(),
			IncludeWeak: toBool(r.FormValue("include_weak"), false),
			AcceptAbove: toFloat(r.FormValue("accept_above"), 0),
			Apply:       toBool(r.FormValue("apply"), false),
			// no Confirm: HTTP runs are always non-interactive
		}

		res, err := resSvc.Resolve(r.Context(), src, tgt, opt, sink)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		writeJSON(w, log, res)
		log.Info().
			Int("source", len(src)).
			Int("target", len(tgt)).
			Int("confirmed", len(res.Confirmed)).
			Int("needsReview", len(res.NeedsReview)).
			Int("unmatched", len(res.Unmatched)).
			Int("applyFailures", len(res.ApplyFailures)).
			Dur("elapsed", time.Since(start)).
			Msg("resolve done")
	}
}

// Duplicates clusters one uploaded export into groups of likely duplicate
// records. Multipart fields: file "file", mapping (name, id, origin,
// header_row, repeated ext), and "threshold".
func Duplicates(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := reqLogger(logger, r)

		defer r.Body.Close()
		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "missing file: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()

		m := model.Mapping{
			NameKey:   r.FormValue("name"),
			IDKey:     r.FormValue("id"),
			ExtKeys:   parseExtKeys(r.Form["ext"]),
			Origin:    orDefault(r.FormValue("origin"), "upload"),
			HeaderRow: atoi(r.FormValue("header_row"), 1),
		}
		rows, err := fileio.ReadAnyMaps(file, header.Filename, m.HeaderRow)
		if err != nil {
			http.Error(w, "failed to read file: "+err.Error(), http.StatusBadRequest)
			return
		}
		records := toRecords(rows, m)

		threshold := toFloat(r.FormValue("threshold"), cfg.ClusterThreshold)
		clusters := resSvc.Cluster(records, threshold, model.DefaultNicknames())

		writeJSON(w, log, map[string]any{
			"clusters":  clusters,
			"records":   len(records),
			"threshold": threshold,
		})
		log.Info().
			Int("records", len(records)).
			Int("clusters", len(clusters)).
			Dur("elapsed", time.Since(start)).
			Msg("duplicates done")
	}
}

// readSide pulls one uploaded export plus its column mapping out of the form.
func readSide(r *http.Request, side string) ([]model.PlayerRecord, error) {
	file, header, err := r.FormFile(side)
	if err != nil {
		return nil, fmt.Errorf("missing %s file: %w", side, err)
	}
	defer file.Close()

	m := model.Mapping{
		NameKey:   r.FormValue(side + "_name"),
		IDKey:     r.FormValue(side + "_id"),
		ExtKeys:   parseExtKeys(r.Form[side+"_ext"]),
		Origin:    orDefault(r.FormValue(side+"_origin"), side),
		HeaderRow: atoi(r.FormValue(side+"_header_row"), 1),
	}
	rows, err := fileio.ReadAnyMaps(file, header.Filename, m.HeaderRow)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", side, err)
	}
	return toRecords(rows, m), nil
}

func orDefault(s, def string) string {
	if s != "" {
		return s
	}
	return def
}

func reqLogger(logger zerolog.Logger, r *http.Request) zerolog.Logger {
	if rid := r.Header.Get("X-Request-ID"); rid != "" {
		return logger.With().Str("req_id", rid).Logger()
	}
	return logger
}

func writeJSON(w http.ResponseWriter, log zerolog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Error().Err(err).Msg("write json")
	}
}
