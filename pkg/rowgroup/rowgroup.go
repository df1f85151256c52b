// Package rowgroup, flat SQL join sonuçlarını nested domain view'larına dönüştürür.
//
// Materialization nedir?
// Bir LEFT JOIN sorgusu her parent için child başına bir satır döner —
// parent kolonları her satırda tekrarlanır. Bu paket o flat satır dizisini
// dedupe edilmiş, hiyerarşik bir yapıya çevirir:
//
//	[{id:"s1", client_id:"k1"}, {id:"s1", client_id:"k2"}]
//	→ [ServerGroup{ID:"s1", Clients:[{client_id:"k1"}, {client_id:"k2"}]}]
//
// Buradaki fonksiyonlar pure'dur: I/O yok, shared state yok, input'u mutate
// etmez. Birden fazla request goroutine'i senkronizasyon olmadan aynı anda
// çağırabilir — her çağrı kendi output'unu allocate eder.
//
// Null-marker kuralı: LEFT JOIN'de eşleşen child satırı olmayan parent'ın
// child kolonları NULL döner. Child materialize etmeden önce client_id
// kontrol edilir — yoksa clientless her server bir adet sahte boş client
// kazanırdı. Bu kural her iki grouping fonksiyonunda da tutarlı uygulanır.
package rowgroup

import "strings"

// Row, bir SQL join tuple'ı: kolon adı → değer.
// Değerler driver'dan geldiği haliyle taşınır (string, int64, time.Time, nil).
type Row map[string]any

// clientPrefix, join'lenen client kolonlarının alias prefix'i.
// Sorgular client tarafındaki her kolonu bu prefix ile alias'lar:
// client.id AS client_id, client.name AS client_name, ...
const clientPrefix = "client_"

// ServerGroup, bir client_server satırının server-scoped kolonları +
// o server'a bağlı client'ların listesi.
//
// Clients, client_ prefix'li kolonları tam key adlarıyla taşıyan Row'lardır —
// prefix strip edilmez, JSON output join sorgusunun kolon sözleşmesini yansıtır.
type ServerGroup struct {
	ID          string `json:"id"`
	CreatedAt   any    `json:"created_at"`
	UpdatedAt   any    `json:"updated_at"`
	ClusterName string `json:"cluster_name"`
	Clients     []Row  `json:"clients"`
}

// UserProfile, tek bir kullanıcının identity kolonları + client listesi.
// emailVerified json key'i DB şemasındaki camelCase kolon adıyla aynıdır.
type UserProfile struct {
	ID            string       `json:"id"`
	Name          any          `json:"name"`
	Email         any          `json:"email"`
	EmailVerified any          `json:"emailVerified"`
	Image         any          `json:"image"`
	Clients       []UserClient `json:"clients"`
}

// UserClient, user view'ındaki bir client kaydı.
type UserClient struct {
	ID        string `json:"id"`
	Name      any    `json:"name"`
	UserID    string `json:"user_id"`
	CreatedAt any    `json:"created_at"`
	UpdatedAt any    `json:"updated_at"`
}

// GroupServersByCluster, server join satırlarını first-seen sırasıyla
// dedupe edilmiş ServerGroup dizisine dönüştürür.
//
// Algoritma: satırlar input sırasıyla taranır. Bir server id ilk kez
// görüldüğünde o satırın server kolonlarından yeni bir ServerGroup açılır.
// Her satırın client_ prefix'li kolonları, client_id NULL değilse, ilgili
// server'ın client listesine satır sırası korunarak eklenir.
//
// Output sırası id'lerin ilk görülme sırasıdır — Go map iterasyonu
// deterministik olmadığı için sıra ayrı bir slice'ta tutulur.
// Boş input boş output üretir; hata dönmez.
func GroupServersByCluster(rows []Row) []ServerGroup {
	groups := make(map[string]*ServerGroup, len(rows))
	order := make([]string, 0, len(rows))

	for _, row := range rows {
		id := str(row["id"])

		g, seen := groups[id]
		if !seen {
			g = &ServerGroup{
				ID:          id,
				CreatedAt:   row["created_at"],
				UpdatedAt:   row["updated_at"],
				ClusterName: str(row["cluster_name"]),
				Clients:     []Row{},
			}
			groups[id] = g
			order = append(order, id)
		}

		// LEFT JOIN'de client eşleşmeyen satır — child üretme
		if row[clientPrefix+"id"] == nil {
			continue
		}

		client := make(Row)
		for key, val := range row {
			if strings.HasPrefix(key, clientPrefix) {
				client[key] = val
			}
		}
		g.Clients = append(g.Clients, client)
	}

	out := make([]ServerGroup, 0, len(order))
	for _, id := range order {
		out = append(out, *groups[id])
	}
	return out
}

// BuildUserWithClients, tek kullanıcılık join sonucundan UserProfile üretir.
//
// Identity kolonları sadece ilk satırdan okunur — sorgu tek kullanıcı
// filtrelediği için tüm satırlar aynı user kolonlarını taşır.
// client_id'si NULL olmayan her satır, satır sırası korunarak bir
// client kaydı üretir.
//
// Boş input "kullanıcı yok" demektir: (nil, false) döner. Bu bir hata
// değildir — handler 404'e çevirir.
func BuildUserWithClients(rows []Row) (*UserProfile, bool) {
	if len(rows) == 0 {
		return nil, false
	}

	first := rows[0]
	user := &UserProfile{
		ID:            str(first["id"]),
		Name:          first["name"],
		Email:         first["email"],
		EmailVerified: first["emailVerified"],
		Image:         first["image"],
		Clients:       []UserClient{},
	}

	for _, row := range rows {
		if row[clientPrefix+"id"] == nil {
			continue
		}
		user.Clients = append(user.Clients, UserClient{
			ID:        str(row["client_id"]),
			Name:      row["client_name"],
			UserID:    str(row["client_user_id"]),
			CreatedAt: row["client_created_at"],
			UpdatedAt: row["client_updated_at"],
		})
	}

	return user, true
}

// str, bir Row değerini string'e indirger.
// SQLite TEXT kolonları driver'a göre string veya []byte gelebilir;
// NULL (nil) boş string olur.
func str(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return ""
	}
}
