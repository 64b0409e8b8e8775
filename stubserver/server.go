// Package stubserver is an in-memory stand-in for the news product's
// REST API, used by tests and the demo runner. The production backend is
// an external collaborator; this fake mirrors its surface (auth,
// articles, profile, bookmarks, reactions and the event collector) with
// maps instead of databases.
package stubserver

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"newsdesk/webclient/models"
)

type account struct {
	ID        int
	Email     string
	Username  string
	Hash      []byte
	CreatedAt time.Time
}

// Server holds the fake backend state.
type Server struct {
	secret []byte
	engine *gin.Engine

	mu         sync.Mutex
	accounts   map[string]*account // by email
	nextUserID int
	articles   []models.Article
	bookmarks  map[int][]int // user id -> article ids, newest first
	reactions  map[int]map[int]string
	profiles   map[int]models.Profile
	events     []models.Envelope
}

// New returns a stub with a seeded article feed and a random signing
// secret.
func New() *Server {
	secret := make([]byte, 32)
	_, _ = rand.Read(secret)

	s := &Server{
		secret:     secret,
		accounts:   make(map[string]*account),
		nextUserID: 1,
		articles:   seedArticles(28),
		bookmarks:  make(map[int][]int),
		reactions:  make(map[int]map[int]string),
		profiles:   make(map[int]models.Profile),
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery(), corsMiddleware())

	r.POST("/auth/register", s.register)
	r.POST("/auth/login", s.login)
	r.GET("/articles", s.listArticles)
	r.POST("/events", s.ingestEvents)

	protected := r.Group("/", s.authRequired())
	{
		protected.GET("/auth/me", s.me)
		protected.POST("/auth/remember", s.remember)
		protected.GET("/profile/me", s.getProfile)
		protected.POST("/profile/me", s.saveProfile)
		protected.GET("/bookmarks", s.listBookmarks)
		protected.GET("/bookmarks/has/:id", s.hasBookmark)
		protected.POST("/bookmarks/:id", s.addBookmark)
		protected.DELETE("/bookmarks/:id", s.removeBookmark)
		protected.GET("/reactions/:id", s.getReaction)
		protected.POST("/reactions/like/:id", s.toggleReaction("like"))
		protected.POST("/reactions/dislike/:id", s.toggleReaction("dislike"))
		protected.DELETE("/reactions/:id", s.clearReaction)
	}

	s.engine = r
	return s
}

// Handler exposes the stub as an http.Handler for httptest servers.
func (s *Server) Handler() http.Handler { return s.engine }

// Events returns a copy of every envelope the collector received, in
// arrival order.
func (s *Server) Events() []models.Envelope {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Envelope, len(s.events))
	copy(out, s.events)
	return out
}

func seedArticles(n int) []models.Article {
	now := time.Now().UTC()
	articles := make([]models.Article, 0, n)
	for i := 1; i <= n; i++ {
		published := now.Add(-time.Duration(i) * time.Hour)
		articles = append(articles, models.Article{
			ID:          i,
			Site:        "newsdesk",
			URL:         fmt.Sprintf("https://news.example.com/articles/%d", i),
			Title:       fmt.Sprintf("Semiconductor market briefing %d", i),
			Summary:     "Demand from cloud and manufacturing keeps climbing while packaging and process competition tightens.",
			ImageURL:    fmt.Sprintf("https://img.example.com/news%d/640/360", i),
			Category:    []string{"tech", "finance", "politics", "world"}[i%4],
			PublishedAt: &published,
			FetchedAt:   now,
		})
	}
	return articles
}

func (s *Server) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	s.mu.Lock()
	if _, exists := s.accounts[req.Email]; exists {
		s.mu.Unlock()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		return
	}
	acc := &account{
		ID:        s.nextUserID,
		Email:     req.Email,
		Username:  req.Username,
		Hash:      hash,
		CreatedAt: time.Now().UTC(),
	}
	s.nextUserID++
	s.accounts[req.Email] = acc
	s.mu.Unlock()

	c.JSON(http.StatusCreated, userOut(acc))
}

func (s *Server) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	s.mu.Lock()
	acc := s.accounts[req.Email]
	s.mu.Unlock()
	if acc == nil || bcrypt.CompareHashAndPassword(acc.Hash, []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	token, err := s.issueToken(acc, time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate authentication token"})
		return
	}
	c.JSON(http.StatusOK, models.Token{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) me(c *gin.Context) {
	acc := s.currentAccount(c)
	if acc == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
		return
	}
	c.JSON(http.StatusOK, userOut(acc))
}

func (s *Server) remember(c *gin.Context) {
	acc := s.currentAccount(c)
	if acc == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
		return
	}
	token, err := s.issueToken(acc, 7*24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate authentication token"})
		return
	}
	c.JSON(http.StatusOK, models.Token{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) listArticles(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	s.mu.Lock()
	articles := make([]models.Article, len(s.articles))
	copy(articles, s.articles)
	s.mu.Unlock()

	if c.Query("order") == "published_desc" {
		sort.SliceStable(articles, func(i, j int) bool {
			pi, pj := articles[i].PublishedAt, articles[j].PublishedAt
			switch {
			case pi == nil:
				return false
			case pj == nil:
				return true
			default:
				return pi.After(*pj)
			}
		})
	}
	if limit > 0 && limit < len(articles) {
		articles = articles[:limit]
	}
	c.JSON(http.StatusOK, articles)
}

func (s *Server) getProfile(c *gin.Context) {
	uid := c.MustGet("user_id").(int)
	s.mu.Lock()
	p := s.profiles[uid]
	s.mu.Unlock()
	c.JSON(http.StatusOK, p)
}

func (s *Server) saveProfile(c *gin.Context) {
	uid := c.MustGet("user_id").(int)
	var p models.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	s.mu.Lock()
	s.profiles[uid] = p
	s.mu.Unlock()
	c.JSON(http.StatusOK, p)
}

func (s *Server) listBookmarks(c *gin.Context) {
	uid := c.MustGet("user_id").(int)
	s.mu.Lock()
	ids := s.bookmarks[uid]
	out := make([]models.Article, 0, len(ids))
	for _, id := range ids {
		if art := s.articleByID(id); art != nil {
			out = append(out, *art)
		}
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, out)
}

func (s *Server) hasBookmark(c *gin.Context) {
	uid := c.MustGet("user_id").(int)
	id, _ := strconv.Atoi(c.Param("id"))
	s.mu.Lock()
	found := containsID(s.bookmarks[uid], id)
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"bookmarked": found})
}

func (s *Server) addBookmark(c *gin.Context) {
	uid := c.MustGet("user_id").(int)
	id, _ := strconv.Atoi(c.Param("id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.articleByID(id) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	if !containsID(s.bookmarks[uid], id) {
		s.bookmarks[uid] = append([]int{id}, s.bookmarks[uid]...)
	}
	c.JSON(http.StatusOK, gin.H{"bookmarked": true})
}

func (s *Server) removeBookmark(c *gin.Context) {
	uid := c.MustGet("user_id").(int)
	id, _ := strconv.Atoi(c.Param("id"))
	s.mu.Lock()
	ids := s.bookmarks[uid]
	for i, v := range ids {
		if v == id {
			s.bookmarks[uid] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"bookmarked": false})
}

func (s *Server) getReaction(c *gin.Context) {
	uid := c.MustGet("user_id").(int)
	id, _ := strconv.Atoi(c.Param("id"))
	s.mu.Lock()
	kind, ok := s.reactions[uid][id]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"reaction": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reaction": kind})
}

// toggleReaction implements the like/dislike state machine: same kind
// toggles off, the other kind switches over.
func (s *Server) toggleReaction(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.MustGet("user_id").(int)
		id, _ := strconv.Atoi(c.Param("id"))

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.articleByID(id) == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		if s.reactions[uid] == nil {
			s.reactions[uid] = make(map[int]string)
		}
		current, ok := s.reactions[uid][id]
		if ok && current == kind {
			delete(s.reactions[uid], id)
			c.JSON(http.StatusOK, models.ReactionState{})
			return
		}
		s.reactions[uid][id] = kind
		c.JSON(http.StatusOK, models.ReactionState{
			Like:    kind == "like",
			Dislike: kind == "dislike",
		})
	}
}

func (s *Server) clearReaction(c *gin.Context) {
	uid := c.MustGet("user_id").(int)
	id, _ := strconv.Atoi(c.Param("id"))
	s.mu.Lock()
	delete(s.reactions[uid], id)
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"reaction": nil})
}

func (s *Server) ingestEvents(c *gin.Context) {
	var batch models.EventBatch
	if err := c.ShouldBindJSON(&batch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if len(batch.Events) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty events"})
		return
	}
	s.mu.Lock()
	s.events = append(s.events, batch.Events...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"accepted": len(batch.Events)})
}

func (s *Server) currentAccount(c *gin.Context) *account {
	email := c.MustGet("user_email").(string)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[email]
}

// articleByID requires s.mu to be held.
func (s *Server) articleByID(id int) *models.Article {
	for i := range s.articles {
		if s.articles[i].ID == id {
			return &s.articles[i]
		}
	}
	return nil
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func userOut(acc *account) models.User {
	return models.User{
		ID:        acc.ID,
		Email:     acc.Email,
		Username:  acc.Username,
		CreatedAt: acc.CreatedAt,
	}
}
