// Command webclient runs a scripted headless reading session against the
// news API: it loads the feed, browses and reacts the way the browser
// frontend does, and emits the same telemetry, flushing beacon deliveries
// on shutdown. With no API_BASE configured it spins up the in-process
// stub backend first.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"newsdesk/webclient/analytics"
	"newsdesk/webclient/auth"
	"newsdesk/webclient/bookmarks"
	"newsdesk/webclient/browser"
	"newsdesk/webclient/client"
	"newsdesk/webclient/config"
	"newsdesk/webclient/models"
	"newsdesk/webclient/prefs"
	"newsdesk/webclient/storage"
	"newsdesk/webclient/stubserver"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	apiBase := cfg.APIBase
	var stubSrv *http.Server
	if apiBase == "" {
		stub := stubserver.New()
		stubSrv = &http.Server{Addr: cfg.StubAddr, Handler: stub.Handler()}
		go func() {
			log.Printf("Stub backend listening on http://%s", cfg.StubAddr)
			if err := stubSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Stub backend failed to start: %v", err)
			}
		}()
		apiBase = "http://" + cfg.StubAddr
		time.Sleep(100 * time.Millisecond)
	}

	durable, err := storage.OpenSQLite(cfg.StatePath)
	if err != nil {
		log.Fatalf("Failed to open durable storage: %v", err)
	}
	defer durable.Close()
	session := storage.NewMemoryStore()

	page := browser.NewPage("https://news.example.com", "/", "https://search.example.com/", cfg.UserAgent)
	identity := analytics.NewIdentity(session, durable)
	transport := analytics.NewTransport(apiBase)
	tracker := analytics.NewTracker(identity, page, transport, cfg.ClientVersion)
	api := client.New(apiBase)
	authMgr := auth.NewManager(api, durable, identity, tracker)
	local := bookmarks.NewLocal(durable)
	log.Printf("UI mode preference: %s", prefs.Mode(durable))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		cancel()
	}()

	runSession(ctx, page, tracker, api, authMgr, local)

	// Unload: close the open view span, then flush beacon deliveries.
	page.Hide()
	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if err := transport.Close(shutdownCtx); err != nil {
		log.Printf("Telemetry flush incomplete: %v", err)
	}
	if stubSrv != nil {
		if err := stubSrv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Stub backend shutdown: %v", err)
		}
	}
	log.Println("Session finished.")
}

// runSession walks one plausible reading session end to end.
func runSession(ctx context.Context, page *browser.Page, tracker *analytics.Tracker, api *client.Client, authMgr *auth.Manager, local *bookmarks.Local) {
	routes := analytics.InstallRouteTracker(tracker, page)
	defer routes.Shutdown()
	teardownScroll := analytics.TrackScrollDepth(tracker, page, page.Path())
	defer teardownScroll()

	if err := authMgr.Restore(ctx); err != nil {
		log.Printf("Session restore: %v", err)
	}

	articles, err := api.Articles(ctx, 10, "published_desc")
	if err != nil {
		log.Printf("Feed unavailable, staying on cached content: %v", err)
		return
	}
	log.Printf("Loaded %d articles", len(articles))

	// The first few cards come into view as the reader scrolls the feed.
	for i, art := range articles {
		if i == 3 {
			break
		}
		el := browser.NewElement()
		stop := analytics.WatchImpression(tracker, el, art.ID)
		el.SetVisibleRatio(0.8)
		stop()
	}
	page.SetScroll(600, 800, 2400)
	page.SetScroll(1600, 800, 2400)

	if len(articles) == 0 {
		return
	}
	lead := articles[0]

	// Open the lead article in the modal and linger on it.
	tracker.Track("click", &analytics.Props{ArticleID: lead.ID, ContentID: contentRef(lead.ID), Meta: map[string]any{"source": "card"}})
	modal := analytics.NewModalTracker(tracker)
	modal.OpenArticle(lead.ID)
	sleepCtx(ctx, 300*time.Millisecond)
	modal.Close()

	// Anonymous bookmark, then a registered session.
	added := local.Toggle(models.BookmarkItem{ID: lead.ID, Title: lead.Title, Image: lead.ImageURL, Description: lead.Summary})
	tracker.Track("toggle", &analytics.Props{ArticleID: lead.ID, ContentID: contentRef(lead.ID), Meta: map[string]any{"action": "bookmark", "value": added, "source": "card"}})

	email := "reader@example.com"
	if err := authMgr.Register(ctx, email, "correct-horse-battery", "reader"); err != nil {
		log.Printf("Register (account may already exist): %v", err)
	}
	if err := authMgr.Login(ctx, email, "correct-horse-battery"); err != nil {
		log.Printf("Login failed, continuing anonymously: %v", err)
	} else {
		if state, err := api.ToggleLike(ctx, lead.ID); err != nil {
			log.Printf("Like failed, leaving UI state untouched: %v", err)
		} else {
			tracker.Track("toggle", &analytics.Props{ArticleID: lead.ID, ContentID: contentRef(lead.ID), Meta: map[string]any{"action": "like", "value": state.Like, "source": "card"}})
		}
		if err := api.SetBookmark(ctx, lead.ID, true); err != nil {
			log.Printf("Bookmark failed, leaving UI state untouched: %v", err)
		}
	}

	routes.Navigate("/for-you")
	tracker.Track("bookmark_list_view", nil)
	sleepCtx(ctx, 200*time.Millisecond)

	routes.Navigate("/profile")
	tracker.Track("profile_view", nil)
	if authMgr.Authenticated() {
		authMgr.Logout()
	}
}

func contentRef(articleID int) string {
	if articleID == 0 {
		return ""
	}
	return fmt.Sprintf("article:%d", articleID)
}

func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
