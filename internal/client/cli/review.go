package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/kycreview/internal/client/models"
	"github.com/dmitrijs2005/kycreview/internal/client/services"
	"github.com/dmitrijs2005/kycreview/internal/filex"
)

func (a *App) Refresh(ctx context.Context) error {
	recs, err := a.controller.Refresh(ctx)
	if err != nil {
		if errors.Is(err, services.ErrNotAuthenticated) {
			fmt.Fprintln(a.out, "Please log in first.")
		}
		return err
	}
	renderQueue(a.out, recs)
	return nil
}

func (a *App) Show(_ context.Context, id int64) error {
	r, err := a.controller.OpenDetails(id)
	if err != nil {
		fmt.Fprintf(a.out, "Record %d is not in the pending queue.\n", id)
		return err
	}
	renderDetails(a.out, r)
	return nil
}

func (a *App) CloseDetails(_ context.Context) error {
	a.controller.CloseDetails()
	return nil
}

func (a *App) Approve(ctx context.Context, id int64) error {
	_, err := a.controller.Approve(ctx, id)
	if errors.Is(err, services.ErrNotAuthenticated) {
		fmt.Fprintln(a.out, "Please log in first.")
	}
	return err
}

// Reject opens the rejection prompt for id. Without an inline reason the
// reviewer is asked for one; an empty answer rejects without a reason.
func (a *App) Reject(ctx context.Context, id int64, reason string) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please log in first.")
		return services.ErrNotAuthenticated
	}
	if err := a.controller.OpenReject(id); err != nil {
		fmt.Fprintf(a.out, "Record %d is not in the pending queue.\n", id)
		return err
	}

	if reason == "" {
		text, err := getSimpleText(a.reader, fmt.Sprintf("Reason for rejecting #%d (optional)", id), a.out)
		if err != nil {
			a.controller.CancelReject()
			return err
		}
		reason = text
	}
	a.controller.SetRejectReason(reason)

	if _, err := a.controller.SubmitReject(ctx); err != nil {
		a.controller.CancelReject()
		return err
	}
	return nil
}

// Download saves a record's document image under the download directory.
func (a *App) Download(ctx context.Context, id int64, doc models.Document) error {
	var (
		rec   models.Record
		found bool
	)
	for _, r := range a.controller.Snapshot().Records {
		if r.ID == id {
			rec, found = r, true
			break
		}
	}
	if !found {
		fmt.Fprintf(a.out, "Record %d is not in the pending queue.\n", id)
		return services.ErrRecordNotLoaded
	}

	src, ok := rec.DocumentURL(doc)
	if !ok {
		fmt.Fprintf(a.out, "Record %d has no %s image.\n", id, doc)
		return nil
	}

	d, err := a.docs.Fetch(ctx, src)
	if err != nil {
		a.log.Warn(ctx, "document download failed", "record_id", id, "document", doc, "error", err)
		fmt.Fprintf(a.out, "Download failed: %v\n", err)
		return err
	}

	dir, err := filex.EnsureSubDir(a.config.DownloadDir)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, fmt.Sprintf("kyc-%d-%s-%s", id, doc, filex.SafeName(d.Name)))
	if err := os.WriteFile(path, d.Data, 0o600); err != nil {
		return err
	}

	a.log.Info(ctx, "document saved", "record_id", id, "document", doc, "path", path)
	fmt.Fprintf(a.out, "Saved %s (%s, %d bytes)\n", path, d.ContentType, len(d.Data))
	return nil
}

func (a *App) Notes(_ context.Context) error {
	ns := a.controller.Snapshot().Notifications
	if len(ns) == 0 {
		fmt.Fprintln(a.out, "No notifications.")
		return nil
	}
	for _, n := range ns {
		fmt.Fprintln(a.out, formatNotification(n))
	}
	return nil
}

func (a *App) Dismiss(_ context.Context, id int64) error {
	if !a.controller.Dismiss(id) {
		fmt.Fprintf(a.out, "No notification %d.\n", id)
	}
	return nil
}
