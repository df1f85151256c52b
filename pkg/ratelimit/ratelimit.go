// Package ratelimit, operatör login endpoint'i için IP bazlı sabit
// pencereli rate limiting sağlar.
//
// Neden in-memory? Filo tek instance çalışır — Redis gibi harici bir
// sayaç deposu gereksiz operasyonel yük olurdu. SQLite'a her denemede
// yazmak da fazladan I/O demek. sync.Mutex korumalı bir map yeterli.
//
// Paket hiçbir proje içi pakete bağımlı değildir; handlers ve
// middleware arasında cycle oluşturmadan her ikisinden kullanılabilir.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// window, tek bir IP için deneme sayacı ve pencere başlangıcı.
type window struct {
	attempts int
	startsAt time.Time
}

// Limiter, IP başına pencere içi deneme sayısını sınırlar.
// Sıfır değeri kullanılamaz — NewLimiter ile oluşturun.
type Limiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	limit    int
	duration time.Duration
	stopCh   chan struct{}
}

// NewLimiter, limiter'ı oluşturur ve süresi dolan pencereleri silen
// temizlik goroutine'ini başlatır.
func NewLimiter(limit int, duration time.Duration) *Limiter {
	l := &Limiter{
		windows:  make(map[string]*window),
		limit:    limit,
		duration: duration,
		stopCh:   make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allow, IP'nin yeni bir denemeye hakkı olup olmadığını döner ve
// sayacı artırır. false dönerse caller 429 ile cevap vermelidir.
func (l *Limiter) Allow(ip string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[ip]
	if !ok || now.Sub(w.startsAt) > l.duration {
		l.windows[ip] = &window{attempts: 1, startsAt: now}
		return true
	}

	w.attempts++
	return w.attempts <= l.limit
}

// Reset, başarılı login sonrası IP'nin sayacını temizler —
// meşru operatör bir sonraki girişinde bloke olmasın.
func (l *Limiter) Reset(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, ip)
}

// RetryAfterSeconds, pencerenin kapanmasına kalan süreyi saniye
// cinsinden döner. Retry-After header değeri olarak kullanılır.
func (l *Limiter) RetryAfterSeconds(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[ip]
	if !ok {
		return 0
	}
	remaining := l.duration - time.Since(w.startsAt)
	if remaining <= 0 {
		return 0
	}
	// yukarı yuvarla — client tam süreyi beklesin
	return int(remaining.Seconds()) + 1
}

// Stop, temizlik goroutine'ini durdurur.
func (l *Limiter) Stop() {
	close(l.stopCh)
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stopCh:
			return
		}
	}
}

func (l *Limiter) cleanup() {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for ip, w := range l.windows {
		if now.Sub(w.startsAt) > l.duration {
			delete(l.windows, ip)
		}
	}
}

// ExtractIP, request'ten gerçek client IP'sini çıkarır.
// Uygulama reverse proxy arkasında çalıştığında RemoteAddr proxy'nin
// adresidir — önce X-Forwarded-For, sonra X-Real-IP denenir.
func ExtractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// "client, proxy1, proxy2" — ilk eleman gerçek client
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
