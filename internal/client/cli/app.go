package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/kycreview/internal/client/client"
	"github.com/dmitrijs2005/kycreview/internal/client/config"
	"github.com/dmitrijs2005/kycreview/internal/client/documents"
	"github.com/dmitrijs2005/kycreview/internal/client/models"
	"github.com/dmitrijs2005/kycreview/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/kycreview/internal/client/services"
	"github.com/dmitrijs2005/kycreview/internal/client/tokeninfo"
	"github.com/dmitrijs2005/kycreview/internal/logging"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config     *config.Config
	controller *services.ReviewController
	docs       documents.Fetcher
	apiClient  client.Client
	db         *sql.DB
	log        logging.Logger
	reader     *bufio.Reader
	out        io.Writer

	notesMu  sync.Mutex
	lastNote int64
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.StoragePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.StoragePath, "error", err)
		return nil, err
	}

	apiClient, err := client.NewKYCClient(c.ServiceBaseURL, c.RequestTimeout, log.With("component", "transport"))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	ctrl := services.NewReviewController(apiClient, metadata.NewSessionStore(db), log,
		services.WithNotificationTTL(c.NotificationTTL))

	httpDocs := documents.NewHTTPFetcher(apiClient.BaseURL(), c.RequestTimeout, ctrl.AuthorizationHeader)
	var s3Docs documents.Fetcher
	s3f, err := documents.NewS3Fetcher(ctx, documents.S3Config{
		Region:       c.S3Region,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
		BaseEndpoint: c.S3BaseEndpoint,
	})
	if err != nil {
		log.Warn(ctx, "s3 document fetcher disabled", "error", err)
	} else {
		s3Docs = s3f
	}

	a := newApp(c, ctrl, documents.NewRouter(httpDocs, s3Docs), log, bufio.NewReader(os.Stdin), os.Stdout)
	a.apiClient = apiClient
	a.db = db
	return a, nil
}

func newApp(c *config.Config, ctrl *services.ReviewController, docs documents.Fetcher, log logging.Logger, r *bufio.Reader, w io.Writer) *App {
	return &App{config: c, controller: ctrl, docs: docs, log: log, reader: r, out: w}
}

// Run starts the console and blocks until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	defer a.close(ctx)

	if err := a.controller.Init(ctx); err != nil {
		a.log.Warn(ctx, "could not load stored session", "error", err)
	}

	fmt.Fprintln(a.out, "KYC review console (type 'help' for commands)")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	notes := make(chan models.Notification, 32)
	unsubscribe := a.controller.Subscribe(func(s services.Snapshot) {
		for _, n := range a.unseen(s.Notifications) {
			select {
			case notes <- n:
			default:
			}
		}
	})
	defer unsubscribe()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case n := <-notes:
				fmt.Fprintln(a.out, formatNotification(n))
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		defer cancel()
		_ = a.Login(ctx)
		runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
		return nil
	})

	return g.Wait()
}

// unseen returns the notifications newer than the last one handed out.
func (a *App) unseen(ns []models.Notification) []models.Notification {
	a.notesMu.Lock()
	defer a.notesMu.Unlock()

	var out []models.Notification
	for _, n := range ns {
		if n.ID > a.lastNote {
			out = append(out, n)
			a.lastNote = n.ID
		}
	}
	return out
}

func (a *App) close(ctx context.Context) {
	a.controller.Close()
	if a.apiClient != nil {
		if err := a.apiClient.Close(); err != nil {
			a.log.Warn(ctx, "closing service client", "error", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(ctx, "closing database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.controller.Snapshot().Authenticated
}

// getStatus renders the prompt status: reviewer, queue size, token expiry
// and the record whose action is in flight.
func (a *App) getStatus() string {
	snap := a.controller.Snapshot()
	if !snap.Authenticated {
		return "(not logged in)"
	}

	s := fmt.Sprintf("%s, %d pending", snap.Username, len(snap.Records))
	if info, err := tokeninfo.Decode(a.controller.Session().Token); err == nil && info.ExpiresAt != nil {
		if info.Expired(time.Now()) {
			s += ", token expired"
		} else {
			s += ", token until " + info.ExpiresAt.Local().Format("15:04")
		}
	}
	if snap.ProcessingID != nil {
		s += fmt.Sprintf(", processing #%d", *snap.ProcessingID)
	}
	return "(" + s + ")"
}
