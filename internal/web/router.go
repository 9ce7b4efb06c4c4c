package web

import (
	"database/sql"
	"net/http"

	"github.com/mkolar/najdeno/internal/upload"
	webembed "github.com/mkolar/najdeno/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, jwtSecret string, uploads *upload.Store) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Templates: templates,
		JWTSecret: jwtSecret,
		Uploads:   uploads,
	}

	mux := http.NewServeMux()
	requireAuth := RequireAuth(jwtSecret, db)
	withIdentity := WithIdentity(jwtSecret, db)

	// Static assets and uploaded photos.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploads.Dir()))))

	// Public routes.
	mux.Handle("GET /{$}", withIdentity(http.HandlerFunc(s.Index)))
	mux.Handle("GET /item/{id}", withIdentity(http.HandlerFunc(s.ItemDetailPage)))
	mux.HandleFunc("GET /register", s.RegisterPage)
	mux.HandleFunc("POST /register", s.RegisterSubmit)
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("GET /logout", s.Logout)

	// Authenticated routes.
	mux.Handle("GET /add", requireAuth(http.HandlerFunc(s.AddItemPage)))
	mux.Handle("POST /add", requireAuth(http.HandlerFunc(s.AddItemSubmit)))
	mux.Handle("GET /my_posts", requireAuth(http.HandlerFunc(s.MyPostsPage)))
	mux.Handle("POST /delete/{id}", requireAuth(http.HandlerFunc(s.DeleteItemSubmit)))
	mux.Handle("GET /edit/{id}", requireAuth(http.HandlerFunc(s.EditItemPage)))
	mux.Handle("POST /edit/{id}", requireAuth(http.HandlerFunc(s.EditItemSubmit)))
	mux.Handle("POST /resolve/{id}", requireAuth(http.HandlerFunc(s.ResolveItemSubmit)))

	return mux, nil
}
