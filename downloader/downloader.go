package downloader

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"schedulebot/database"
	"schedulebot/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Parallel - сколько файлов скачивается одновременно
const Parallel = 4

// HashStore хранит sha1 последней скачанной версии файла
type HashStore interface {
	FileHash(name string) (string, error)
	SetFileHash(name, hash string) error
}

// Downloader забирает файлы расписания со страницы института
type Downloader struct {
	pageURL    string
	baseURL    string
	dest       string
	extensions []string
	store      HashStore
	client     *http.Client
}

// New: pageURL - страница со списком файлов, baseURL - префикс для
// относительных ссылок (пустой - относительно самой страницы)
func New(pageURL, baseURL, dest string, extensions []string, store HashStore) *Downloader {
	return &Downloader{
		pageURL:    pageURL,
		baseURL:    baseURL,
		dest:       dest,
		extensions: extensions,
		store:      store,
		client:     &http.Client{Timeout: 2 * time.Minute},
	}
}

// Links собирает ссылки на файлы из таблицы расписаний
func (d *Downloader) Links() ([]string, error) {
	var (
		links []string
		seen  = make(map[string]bool)
	)

	c := colly.NewCollector()

	c.OnHTML("table.istu-table tbody", func(e *colly.HTMLElement) {
		e.DOM.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
			href, _ := s.Attr("href")
			link := d.resolve(e.Request, strings.TrimSpace(href))
			if link == "" || seen[link] {
				return
			}
			if !utils.IsScheduleFile(fileName(link), d.extensions) {
				log.Debugf("Skip link %s", link)
				return
			}
			seen[link] = true
			links = append(links, link)
		})
	})

	c.OnRequest(func(r *colly.Request) {
		log.Infof("Visiting %s", r.URL.String())
	})

	c.OnError(func(r *colly.Response, err error) {
		log.WithError(err).Errorf("Request to %s failed", r.Request.URL)
	})

	if err := c.Visit(d.pageURL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", d.pageURL, err)
	}
	return links, nil
}

func (d *Downloader) resolve(r *colly.Request, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if d.baseURL != "" {
		return strings.TrimRight(d.baseURL, "/") + "/" + strings.TrimLeft(href, "/")
	}
	return r.AbsoluteURL(href)
}

// fileName - имя файла из ссылки; u.Path уже раскодирован url.Parse
func fileName(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return path.Base(link)
	}
	return path.Base(u.Path)
}

// safeName отсекает имена, которые выводят за каталог загрузки
func safeName(name string) bool {
	return name != "" && name != "." && name != ".." && name != "/" &&
		name == filepath.Base(name) && !strings.ContainsAny(name, `/\`)
}

// Download скачивает все файлы со страницы и возвращает пути тех,
// что появились или изменились с прошлого раза
func (d *Downloader) Download(ctx context.Context) ([]string, error) {
	links, err := d.Links()
	if err != nil {
		return nil, err
	}
	log.Infof("Found %d schedule files", len(links))

	if err := os.MkdirAll(d.dest, 0755); err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		changed []string
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(Parallel)
	for _, link := range links {
		link := link
		g.Go(func() error {
			file, updated, err := d.fetch(ctx, link)
			if err != nil {
				return fmt.Errorf("%s: %w", link, err)
			}
			if updated {
				mu.Lock()
				changed = append(changed, file)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(changed)
	return changed, nil
}

// fetch пишет файл во временный, считает sha1 и подменяет старый файл,
// только если содержимое изменилось
func (d *Downloader) fetch(ctx context.Context, link string) (string, bool, error) {
	name := fileName(link)
	if !safeName(name) {
		return "", false, fmt.Errorf("bad file name %q", name)
	}
	target := filepath.Join(d.dest, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", false, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("unexpected status %s", resp.Status)
	}

	tmp, err := os.CreateTemp(d.dest, name+".*.part")
	if err != nil {
		return "", false, err
	}
	defer os.Remove(tmp.Name())

	h := sha1.New()
	if _, err := io.Copy(io.MultiWriter(tmp, h), resp.Body); err != nil {
		tmp.Close()
		return "", false, err
	}
	if err := tmp.Close(); err != nil {
		return "", false, err
	}
	sum := hex.EncodeToString(h.Sum(nil))

	old, err := d.store.FileHash(name)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return "", false, err
	}
	if old == sum {
		if _, err := os.Stat(target); err == nil {
			log.Debugf("%s not changed", name)
			return target, false, nil
		}
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", false, err
	}
	if err := d.store.SetFileHash(name, sum); err != nil {
		return "", false, err
	}
	log.Infof("Downloaded %s", name)
	return target, true, nil
}
