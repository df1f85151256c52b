// Migration SQL dosyalarını binary'ye gömer — deploy edilen binary'nin
// yanında migration dosyalarına ihtiyaç kalmaz.
package database

import "embed"

// EmbeddedMigrations, migrations/ dizinindeki SQL dosyalarını içerir.
// Kullanım: fs.Sub(EmbeddedMigrations, "migrations") ile alt dizine eriş.
//
//go:embed migrations/*.sql
var EmbeddedMigrations embed.FS
