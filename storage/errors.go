package storage

import (
	"errors"
	"fmt"
)

// ValidationError rejette un fichier avant tout appel réseau. Toujours
// récupérable côté client, jamais réessayé automatiquement.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// StorageError signale un échec du backend de stockage pendant une écriture
// ou une suppression primaire.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed for key %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ErrObjectNotFound: la cible d'une suppression est absente. Les deletes
// sont idempotents, l'appelant le traite comme un succès.
var ErrObjectNotFound = errors.New("object not found")
