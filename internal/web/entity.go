package web

import (
	"bytes"
	"context"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"pannel_backoffice/internal/common"
	"pannel_backoffice/internal/controller"
	"pannel_backoffice/internal/forms"
	"pannel_backoffice/internal/logger"
)

// registerEntity mounts the five listing endpoints for one entity:
//
//	GET    {base}            page/search/refresh, returns the snapshot
//	GET    {base}/export     current view as a PDF attachment
//	POST   {base}            create through the modal form
//	PUT    {base}/:id        update through the modal form
//	DELETE {base}/:id        delete, requires ?confirm=true
//
// The listing GET never fails the HTTP exchange: a backend outage keeps
// the previous snapshot and reports through toasts, like the screen does.
func registerEntity[T any, P any](
	grp fiber.Router,
	base string,
	pick func(*Session) *controller.ListController[T],
	form func(*Session) *forms.Form[P],
) {
	registerEntityList(grp, base, pick)
	registerEntityExport(grp, base, pick)
	registerEntityCreate(grp, base, pick, form)
	registerEntityUpdate(grp, base, pick, form)
	registerEntityDelete(grp, base, pick)
}

func registerEntityList[T any](grp fiber.Router, base string, pick func(*Session) *controller.ListController[T]) {
	grp.Get(base, func(c fiber.Ctx) error {
		s := sessionFrom(c)
		ctl := pick(s)
		applyListQuery(c, s, ctl)
		return respondSnapshot(c, s, ctl)
	})
}

func registerEntityExport[T any](grp fiber.Router, base string, pick func(*Session) *controller.ListController[T]) {
	grp.Get(base+"/export", func(c fiber.Ctx) error {
		s := sessionFrom(c)
		ctl := pick(s)
		var buf bytes.Buffer
		if err := ctl.ExportCurrentView(&buf); err != nil {
			return HandleErrorResponse(c, err)
		}
		c.Set("Content-Type", "application/pdf")
		c.Set("Content-Disposition", `attachment; filename="`+ctl.Filename()+`"`)
		return c.Send(buf.Bytes())
	})
}

func registerEntityCreate[T any, P any](grp fiber.Router, base string, pick func(*Session) *controller.ListController[T], form func(*Session) *forms.Form[P]) {
	grp.Post(base, func(c fiber.Ctx) error {
		s := sessionFrom(c)
		var payload P
		if err := c.Bind().Body(&payload); err != nil {
			return HandleErrorResponse(c, bindError())
		}
		f := form(s)
		f.OpenCreate(payload)
		err := f.Submit(c.Context(), func(ctx context.Context, _ string, values P) error {
			return pick(s).Create(ctx, values)
		})
		if err != nil {
			return respondFormFailure(c, s, f, err)
		}
		logger.LogAction("create", base, "", c, nil)
		return HandleResponse(c, fiber.Map{"toasts": s.Toasts.Drain()}, nil)
	})
}

func registerEntityUpdate[T any, P any](grp fiber.Router, base string, pick func(*Session) *controller.ListController[T], form func(*Session) *forms.Form[P]) {
	grp.Put(base+"/:id", func(c fiber.Ctx) error {
		s := sessionFrom(c)
		id := c.Params("id")
		var payload P
		if err := c.Bind().Body(&payload); err != nil {
			return HandleErrorResponse(c, bindError())
		}
		f := form(s)
		f.OpenEdit(id, payload)
		err := f.Submit(c.Context(), func(ctx context.Context, editID string, values P) error {
			return pick(s).Update(ctx, editID, values)
		})
		if err != nil {
			return respondFormFailure(c, s, f, err)
		}
		logger.LogAction("update", base, id, c, nil)
		return HandleResponse(c, fiber.Map{"toasts": s.Toasts.Drain()}, nil)
	})
}

func registerEntityDelete[T any](grp fiber.Router, base string, pick func(*Session) *controller.ListController[T]) {
	grp.Delete(base+"/:id", func(c fiber.Ctx) error {
		s := sessionFrom(c)
		id := c.Params("id")
		s.ArmConfirm(c.Query("confirm") == "true")
		if pw := c.Query("password"); pw != "" {
			s.ArmDeletePassword(pw)
		}
		if err := pick(s).Delete(c.Context(), id); err != nil {
			return HandleErrorResponse(c, err)
		}
		logger.LogAction("delete", base, id, c, nil)
		return HandleResponse(c, fiber.Map{"toasts": s.Toasts.Drain()}, nil)
	})
}

// applyListQuery folds the request's page/search parameters into the
// controller, refreshing exactly once.
func applyListQuery[T any](c fiber.Ctx, s *Session, ctl *controller.ListController[T]) {
	snap := ctl.Snapshot()
	// an absent parameter keeps the session's filter, a present but empty
	// one clears it
	search := snap.Search
	if c.RequestCtx().QueryArgs().Has("search") {
		search = c.Query("search")
	}
	page, _ := strconv.Atoi(c.Query("page"))

	switch {
	case search != snap.Search:
		ctl.SetFilter(c.Context(), search)
	case page > 0 && page != snap.Page:
		ctl.SetPage(c.Context(), page)
	default:
		ctl.Refresh(c.Context())
	}
}

func respondSnapshot[T any](c fiber.Ctx, s *Session, ctl *controller.ListController[T]) error {
	snap := ctl.Snapshot()
	return HandleResponse(c, fiber.Map{
		"items":       snap.Items,
		"page":        snap.Page,
		"page_size":   snap.PageSize,
		"count":       snap.Count,
		"total_pages": snap.TotalPages,
		"next":        snap.Next,
		"previous":    snap.Previous,
		"search":      snap.Search,
		"loading":     snap.Loading,
		"toasts":      s.Toasts.Drain(),
	}, nil)
}

// respondFormFailure reports a rejected submission along with the field
// errors so the dialog can re-render without losing input.
func respondFormFailure[P any](c fiber.Ctx, s *Session, f *forms.Form[P], err error) error {
	appErr := common.AsError(err)
	status := appErr.StatusCode
	if status == 0 {
		status = common.StatusBadGateway
	}
	return JSONResponse(c, status, fiber.Map{
		"code":         appErr.Code.Code,
		"message":      appErr.Notification(),
		"field_errors": f.State().FieldErrors,
		"toasts":       s.Toasts.Drain(),
		"status":       "error",
	})
}

func bindError() *common.Error {
	return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, nil)
}
