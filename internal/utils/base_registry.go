package utils

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
)

// RegistryValidator is a function that validates a key-value pair before registration
type RegistryValidator[K cmp.Ordered, V any] func(key K, value V, existing map[K]V) error

// BaseRegistry provides a generic, thread-safe registry. Values are stored
// and replaced whole; the registry never mutates a stored value.
type BaseRegistry[K cmp.Ordered, V any] struct {
	mu            sync.RWMutex
	items         map[K]V
	validator     RegistryValidator[K, V]
	registryName  string
	keyDescriptor string // e.g. "application", "interceptor"
}

// NewBaseRegistry creates a new base registry with the specified configuration
func NewBaseRegistry[K cmp.Ordered, V any](registryName, keyDesc string) *BaseRegistry[K, V] {
	return &BaseRegistry[K, V]{
		items:         make(map[K]V),
		registryName:  registryName,
		keyDescriptor: keyDesc,
	}
}

// SetValidator sets the validation function for this registry
func (r *BaseRegistry[K, V]) SetValidator(validator RegistryValidator[K, V]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validator = validator
}

// Register adds an item, failing when the key is already present
func (r *BaseRegistry[K, V]) Register(key K, value V) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[key]; exists {
		return fmt.Errorf("%s registry: %s '%v' is already registered", r.registryName, r.keyDescriptor, key)
	}
	if err := r.validate(key, value); err != nil {
		return err
	}
	r.items[key] = value
	return nil
}

// Swap stores value under key and returns the value it replaced
func (r *BaseRegistry[K, V]) Swap(key K, value V) (previous V, replaced bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.validate(key, value); err != nil {
		return previous, false, err
	}
	previous, replaced = r.items[key]
	r.items[key] = value
	return previous, replaced, nil
}

func (r *BaseRegistry[K, V]) validate(key K, value V) error {
	if r.validator == nil {
		return nil
	}
	if err := r.validator(key, value, r.items); err != nil {
		return fmt.Errorf("%s registry: %w", r.registryName, err)
	}
	return nil
}

// Get retrieves an item from the registry
func (r *BaseRegistry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, exists := r.items[key]
	return value, exists
}

// GetOrError retrieves an item or returns an error if not found
func (r *BaseRegistry[K, V]) GetOrError(key K) (V, error) {
	value, exists := r.Get(key)
	if !exists {
		return value, fmt.Errorf("%s '%v' is not registered", r.keyDescriptor, key)
	}
	return value, nil
}

// Has checks if a key exists in the registry
func (r *BaseRegistry[K, V]) Has(key K) bool {
	_, exists := r.Get(key)
	return exists
}

// Keys returns all keys in ascending order
func (r *BaseRegistry[K, V]) Keys() []K {
	r.mu.RLock()
	keys := make([]K, 0, len(r.items))
	for key := range r.items {
		keys = append(keys, key)
	}
	r.mu.RUnlock()

	slices.Sort(keys)
	return keys
}

// Size returns the number of items in the registry
func (r *BaseRegistry[K, V]) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// Delete removes an item and returns it
func (r *BaseRegistry[K, V]) Delete(key K) (V, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, exists := r.items[key]
	if exists {
		delete(r.items, key)
	}
	return value, exists
}

// NotEmptyKeyValidator validates that a string key is not empty
func NotEmptyKeyValidator[V any](keyDesc string) RegistryValidator[string, V] {
	return func(key string, value V, existing map[string]V) error {
		if key == "" {
			return fmt.Errorf("%s cannot be empty", keyDesc)
		}
		return nil
	}
}

// NotNilValueValidator validates that a pointer value is not nil
func NotNilValueValidator[K cmp.Ordered, V any](valueDesc string) RegistryValidator[K, *V] {
	return func(key K, value *V, existing map[K]*V) error {
		if value == nil {
			return fmt.Errorf("%s cannot be nil", valueDesc)
		}
		return nil
	}
}

// ChainValidators combines multiple validators into one
func ChainValidators[K cmp.Ordered, V any](validators ...RegistryValidator[K, V]) RegistryValidator[K, V] {
	return func(key K, value V, existing map[K]V) error {
		for _, validator := range validators {
			if validator != nil {
				if err := validator(key, value, existing); err != nil {
					return err
				}
			}
		}
		return nil
	}
}
