// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"blogbuilder/internal/blog"
	"blogbuilder/internal/models"
)

// Metafield coordinates of the structured sections copy.
const (
	SectionsNamespace = "blog"
	SectionsKey       = "sections"
)

const articleFields = `
	id
	title
	handle
	body
	summary
	tags
	isPublished
	publishedAt
	createdAt
	updatedAt
	author { name }
	blog { id title }
`

var (
	articleCreateMutation = mustQuery(`
mutation ArticleCreate($article: ArticleCreateInput!) {
	articleCreate(article: $article) {
		article {` + articleFields + `}
		userErrors { field message code }
	}
}`)

	articleUpdateMutation = mustQuery(`
mutation ArticleUpdate($id: ID!, $article: ArticleUpdateInput!) {
	articleUpdate(id: $id, article: $article) {
		article {` + articleFields + `}
		userErrors { field message code }
	}
}`)

	articleDeleteMutation = mustQuery(`
mutation ArticleDelete($id: ID!) {
	articleDelete(id: $id) {
		deletedArticleId
		userErrors { field message code }
	}
}`)

	articleQuery = mustQuery(`
query Article($id: ID!) {
	article(id: $id) {` + articleFields + `
		metafield(namespace: "` + SectionsNamespace + `", key: "` + SectionsKey + `") { value }
	}
}`)

	articlesQuery = mustQuery(`
query Articles($first: Int!) {
	articles(first: $first, sortKey: UPDATED_AT, reverse: true) {
		nodes {` + articleFields + `}
	}
}`)

	firstBlogQuery = mustQuery(`
query FirstBlog {
	blogs(first: 1) { nodes { id } }
}`)
)

// articleNode is the GraphQL shape of an article.
type articleNode struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Handle      string     `json:"handle"`
	Body        string     `json:"body"`
	Summary     string     `json:"summary"`
	Tags        []string   `json:"tags"`
	IsPublished bool       `json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Author      *struct {
		Name string `json:"name"`
	} `json:"author"`
	Blog *struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"blog"`
	Metafield *struct {
		Value string `json:"value"`
	} `json:"metafield"`
}

func (n *articleNode) model() models.Article {
	a := models.Article{
		ID:          n.ID,
		Title:       n.Title,
		Handle:      n.Handle,
		Body:        n.Body,
		Summary:     n.Summary,
		Tags:        n.Tags,
		IsPublished: n.IsPublished,
		PublishedAt: n.PublishedAt,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
		Author:      blog.DefaultAuthor,
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
	if n.Author != nil && n.Author.Name != "" {
		a.Author = n.Author.Name
	}
	if n.Blog != nil {
		a.BlogID, a.BlogTitle = n.Blog.ID, n.Blog.Title
	}
	return a
}

// ArticleRepository stores articles in the shop. It implements
// blog.Repository.
type ArticleRepository struct {
	client *Client
	blogID string
}

// NewArticleRepository creates a repository. blogID is the blog new
// articles go to when the request names none; when empty, the shop's
// first blog is used.
func NewArticleRepository(c *Client, blogID string) *ArticleRepository {
	return &ArticleRepository{client: c, blogID: blogID}
}

var _ blog.Repository = (*ArticleRepository)(nil)

// Save creates or updates the article. The sections copy travels in the
// same mutation as the body, as the article's blog.sections metafield, so
// the shop stores both or neither.
func (r *ArticleRepository) Save(ctx context.Context, in blog.ArticleInput) (*models.Article, error) {
	fields := map[string]any{
		"title":   in.Title,
		"body":    in.Body,
		"summary": in.Summary,
		"tags":    []string(in.Tags),
		"author":  map[string]any{"name": in.Author},
	}
	if len(in.Sections) > 0 {
		fields["metafields"] = []map[string]any{{
			"namespace": SectionsNamespace,
			"key":       SectionsKey,
			"type":      "json",
			"value":     string(in.Sections),
		}}
	}

	var node *articleNode
	if in.ID == "" {
		blogID, err := r.targetBlog(ctx, in.BlogID)
		if err != nil {
			return nil, err
		}
		fields["blogId"] = blogID
		fields["isPublished"] = true
		if in.Handle != "" {
			fields["handle"] = in.Handle
		}

		var out struct {
			ArticleCreate struct {
				Article    *articleNode `json:"article"`
				UserErrors UserErrors   `json:"userErrors"`
			} `json:"articleCreate"`
		}
		if err := r.client.GraphQL(ctx, articleCreateMutation, map[string]any{"article": fields}, &out); err != nil {
			return nil, fmt.Errorf("article create: %w", err)
		}
		if err := out.ArticleCreate.UserErrors.orNil(); err != nil {
			return nil, err
		}
		node = out.ArticleCreate.Article
	} else {
		var out struct {
			ArticleUpdate struct {
				Article    *articleNode `json:"article"`
				UserErrors UserErrors   `json:"userErrors"`
			} `json:"articleUpdate"`
		}
		vars := map[string]any{"id": models.ArticleGID(in.ID), "article": fields}
		if err := r.client.GraphQL(ctx, articleUpdateMutation, vars, &out); err != nil {
			return nil, fmt.Errorf("article update: %w", err)
		}
		if err := out.ArticleUpdate.UserErrors.orNil(); err != nil {
			return nil, err
		}
		node = out.ArticleUpdate.Article
	}
	if node == nil {
		return nil, errors.New("shopify returned no article")
	}

	a := node.model()
	return &a, nil
}

// targetBlog resolves which blog a new article goes to.
func (r *ArticleRepository) targetBlog(ctx context.Context, requested string) (string, error) {
	if requested != "" {
		return blogGID(requested), nil
	}
	if r.blogID != "" {
		return blogGID(r.blogID), nil
	}
	var out struct {
		Blogs struct {
			Nodes []struct {
				ID string `json:"id"`
			} `json:"nodes"`
		} `json:"blogs"`
	}
	if err := r.client.GraphQL(ctx, firstBlogQuery, nil, &out); err != nil {
		return "", fmt.Errorf("find blog: %w", err)
	}
	if len(out.Blogs.Nodes) == 0 {
		return "", errors.New("the shop has no blog to publish to")
	}
	return out.Blogs.Nodes[0].ID, nil
}

func blogGID(id string) string {
	if _, err := strconv.ParseInt(id, 10, 64); err == nil {
		return "gid://shopify/Blog/" + id
	}
	return id
}

// Load reads an article with its sections copy.
func (r *ArticleRepository) Load(ctx context.Context, id string) (*blog.LoadedArticle, error) {
	var out struct {
		Article *articleNode `json:"article"`
	}
	if err := r.client.GraphQL(ctx, articleQuery, map[string]any{"id": models.ArticleGID(id)}, &out); err != nil {
		return nil, fmt.Errorf("article query: %w", err)
	}
	if out.Article == nil {
		return nil, fmt.Errorf("article %s: %w", id, blog.ErrNotFound)
	}

	la := &blog.LoadedArticle{Article: out.Article.model()}
	if mf := out.Article.Metafield; mf != nil && mf.Value != "" {
		la.Sections = json.RawMessage(mf.Value)
	}
	return la, nil
}

// List returns up to limit articles, most recently updated first.
func (r *ArticleRepository) List(ctx context.Context, limit int) ([]models.Article, error) {
	if limit <= 0 || limit > 250 {
		limit = 50
	}
	var out struct {
		Articles struct {
			Nodes []articleNode `json:"nodes"`
		} `json:"articles"`
	}
	if err := r.client.GraphQL(ctx, articlesQuery, map[string]any{"first": limit}, &out); err != nil {
		return nil, fmt.Errorf("articles query: %w", err)
	}
	articles := make([]models.Article, 0, len(out.Articles.Nodes))
	for i := range out.Articles.Nodes {
		a := out.Articles.Nodes[i].model()
		a.Body = ""
		articles = append(articles, a)
	}
	return articles, nil
}

// Delete removes an article with articleDelete. If the GraphQL call fails
// for any reason other than cancellation, it falls back to the REST API:
// every blog is searched for the article and the owning blog's copy is
// deleted.
func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	var out struct {
		ArticleDelete struct {
			DeletedArticleID *string    `json:"deletedArticleId"`
			UserErrors       UserErrors `json:"userErrors"`
		} `json:"articleDelete"`
	}
	err := r.client.GraphQL(ctx, articleDeleteMutation, map[string]any{"id": models.ArticleGID(id)}, &out)
	if err == nil {
		err = out.ArticleDelete.UserErrors.orNil()
	}
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	slog.Warn("graphql article delete failed, trying REST", "article_id", id, "error", err)
	if restErr := r.deleteREST(ctx, models.LegacyID(id)); restErr != nil {
		if errors.Is(restErr, blog.ErrNotFound) {
			return restErr
		}
		return fmt.Errorf("both GraphQL and REST delete failed: %v; %w", err, restErr)
	}
	return nil
}

// deleteREST finds the blog holding the article and deletes it there.
// Blogs are queried concurrently.
func (r *ArticleRepository) deleteREST(ctx context.Context, articleID string) error {
	var blogs struct {
		Blogs []struct {
			ID int64 `json:"id"`
		} `json:"blogs"`
	}
	if err := r.client.REST(ctx, http.MethodGet, "blogs.json", &blogs); err != nil {
		return fmt.Errorf("list blogs: %w", err)
	}

	var (
		mu    sync.Mutex
		owner int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, b := range blogs.Blogs {
		g.Go(func() error {
			path := fmt.Sprintf("blogs/%d/articles/%s.json", b.ID, articleID)
			err := r.client.REST(gctx, http.MethodGet, path, nil)
			if IsNotFound(err) {
				return nil
			}
			if err != nil {
				return err
			}
			mu.Lock()
			owner = b.ID
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("find article: %w", err)
	}
	if owner == 0 {
		return fmt.Errorf("article %s in any blog: %w", articleID, blog.ErrNotFound)
	}

	path := fmt.Sprintf("blogs/%d/articles/%s.json", owner, articleID)
	if err := r.client.REST(ctx, http.MethodDelete, path, nil); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}
