package rowgroup

import (
	"database/sql"
	"fmt"
)

// ScanRows, bir *sql.Rows sonucunu kolon adı indeksli Row dizisine çevirir.
//
// Repository'lerin tipli Scan()'inden farklı olarak kolon listesi sorgudan
// dinamik okunur — join sorgularının alias'lı kolon sözleşmesi böylece
// tek noktada, DB boundary'de çözülür ve materializer'a şema bilgisi sızmaz.
//
// []byte değerler string'e normalize edilir: SQLite TEXT kolonları bazı
// durumlarda raw byte döner, JSON encoding'de base64'e dönüşmesin.
func ScanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read result columns: %w", err)
	}

	var out []Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan joined row: %w", err)
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			val := values[i]
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			row[col] = val
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate joined rows: %w", err)
	}
	return out, nil
}
