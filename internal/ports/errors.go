package ports

import "errors"

// ErrNotFound est renvoyé par les adapters de stockage quand la clé n'existe pas.
var ErrNotFound = errors.New("not found")
