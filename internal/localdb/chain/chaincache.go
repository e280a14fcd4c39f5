package chain

import (
	"errors"
	"io"

	"netstatus-bar/internal/localdb"
)

type ChainCache struct {
	list []localdb.Lookuper
}

func NewChainCache(list ...localdb.Lookuper) *ChainCache {
	return &ChainCache{list: list}
}

func (c *ChainCache) Lookup(ip string) (localdb.Location, bool) {
	for _, s := range c.list {
		if s == nil {
			continue
		}
		if l, ok := s.Lookup(ip); ok && l.Country != "" {
			return l, true
		}
	}
	return localdb.Location{}, false
}

func (c *ChainCache) Len() int {
	n := 0
	for _, s := range c.list {
		if s != nil {
			n++
		}
	}
	return n
}

func (c *ChainCache) Close() error {
	var errs []error
	for _, s := range c.list {
		if cl, ok := s.(io.Closer); ok {
			errs = append(errs, cl.Close())
		}
	}
	return errors.Join(errs...)
}
