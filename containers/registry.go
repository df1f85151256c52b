package containers

import (
	"sort"
	"sync"
)

// ContainerRef, bir client'a bağlanmış container'ın kimliği.
type ContainerRef struct {
	ContainerID string `json:"container_id"`
	Name        string `json:"name"`
}

// Registry, client_id → container eşlemesini tutan in-memory kayıt.
//
// Module-level global bir map DEĞİLDİR — main.go'da bir kez oluşturulur
// ve ihtiyaç duyan service'lere dependency olarak geçilir. Lifecycle'ı
// nettir: provision sırasında Bind ile doldurulur, request handler'ları
// Lookup/Snapshot ile okur, container kaldırıldığında Unbind ile temizlenir.
//
// sync.RWMutex: okuma ağırlıklı erişim (her /query ve her health sweep
// okur), yazma sadece provision/teardown'da olur.
type Registry struct {
	mu   sync.RWMutex
	refs map[string]ContainerRef
}

// NewRegistry, boş bir Registry oluşturur.
func NewRegistry() *Registry {
	return &Registry{refs: make(map[string]ContainerRef)}
}

// Bind, client'ı bir container'a bağlar. Mevcut binding üzerine yazar.
func (r *Registry) Bind(clientID string, ref ContainerRef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refs[clientID] = ref
}

// Unbind, client'ın binding'ini kaldırır. Binding yoksa no-op.
func (r *Registry) Unbind(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.refs, clientID)
}

// Lookup, client'ın container binding'ini döner.
func (r *Registry) Lookup(clientID string) (ContainerRef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ref, ok := r.refs[clientID]
	return ref, ok
}

// Snapshot, tüm eşlemenin client_id → container adı kopyasını döner.
// GET /api/mappings bu view'ı serialize eder.
func (r *Registry) Snapshot() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string, len(r.refs))
	for clientID, ref := range r.refs {
		out[clientID] = ref.Name
	}
	return out
}

// ClientIDs, kayıtlı client id'lerini sıralı döner.
// Health monitor sweep'i deterministik sırayla gezer.
func (r *Registry) ClientIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.refs))
	for clientID := range r.refs {
		ids = append(ids, clientID)
	}
	sort.Strings(ids)
	return ids
}

// Len, kayıtlı binding sayısını döner.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.refs)
}
