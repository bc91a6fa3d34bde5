// Package http provides http transport for records
package http

import (
	stdhttp "net/http"
	"strconv"

	"moodwire/internal/modkit/httpkit"
	perr "moodwire/internal/platform/errors"
	"moodwire/internal/services/api/records/domain"
	svc "moodwire/internal/services/api/records/service"
)

// Register mounts records endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/raw", h.raw)
	httpkit.Get(r, "/classified", h.classified)
}

type handlers struct{ svc svc.Service }

// queryInt reads an optional non-negative integer query parameter
func queryInt(r *stdhttp.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, perr.Newf(perr.ErrorCodeInvalidArgument, "query param %q must be a non-negative integer", name)
	}
	return v, nil
}

// swagger:route GET /records/raw Records recordsRaw
// @Summary Page of ingested comments
// @Tags Records
// @Produce json
// @Param offset query int false "Row offset" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {array} domain.RawComment "ok"
// @Router /records/raw [get]
func (h *handlers) raw(r *stdhttp.Request) (any, error) {
	offset, err := queryInt(r, "offset")
	if err != nil {
		return nil, err
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		return nil, err
	}
	return h.svc.PageRaw(r.Context(), domain.RawPageInput{Offset: int(offset), Limit: int(limit)})
}

// swagger:route GET /records/classified Records recordsClassified
// @Summary Cursor page of classified comments
// @Tags Records
// @Produce json
// @Param cursor query int false "Last comment id already seen" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 type domain.ClassifiedPage "ok"
// @Router /records/classified [get]
func (h *handlers) classified(r *stdhttp.Request) (any, error) {
	cursor, err := queryInt(r, "cursor")
	if err != nil {
		return nil, err
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		return nil, err
	}
	return h.svc.PageClassified(r.Context(), domain.ClassifiedPageInput{Cursor: cursor, Limit: int(limit)})
}
