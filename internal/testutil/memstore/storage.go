package memstore

import (
	"context"
	"errors"
	"sync"
)

// ErrStorageDown error simulado del almacenamiento de objetos.
var ErrStorageDown = errors.New("memstore: almacenamiento no disponible")

// Objects almacenamiento de objetos en memoria (implementa catalog.ObjectStorage).
type Objects struct {
	mu         sync.Mutex
	objects    map[string][]byte
	FailUpload bool
	FailDelete bool
}

// NewObjects crea un almacenamiento vacío.
func NewObjects() *Objects {
	return &Objects{objects: map[string][]byte{}}
}

func (o *Objects) Upload(_ context.Context, path, _ string, body []byte) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.FailUpload {
		return "", ErrStorageDown
	}
	o.objects[path] = append([]byte(nil), body...)
	return "https://cdn.test/" + path, nil
}

func (o *Objects) Delete(_ context.Context, paths ...string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.FailDelete {
		return ErrStorageDown
	}
	for _, p := range paths {
		delete(o.objects, p)
	}
	return nil
}

// Has informa si existe un objeto en path.
func (o *Objects) Has(path string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.objects[path]
	return ok
}

// Len número de objetos guardados.
func (o *Objects) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.objects)
}
