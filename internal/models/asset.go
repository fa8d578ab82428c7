package models

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tidwall/jsonc"
)

type AssetObject struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

/**
 * Asset index document (assets/indexes/<id>.json)
 * @property {map[string]AssetObject} objects - logical asset name -> hash and size
 */
type AssetIndex struct {
	Objects        map[string]AssetObject `json:"objects"`
	Virtual        bool                   `json:"virtual,omitempty"`
	MapToResources bool                   `json:"map_to_resources,omitempty"`
}

// ParseAssetIndex decodes an asset index; an unparsable document is ErrNotFound.
func ParseAssetIndex(data []byte) (*AssetIndex, error) {
	var idx AssetIndex
	if err := json.Unmarshal(jsonc.ToJSON(data), &idx); err != nil {
		return nil, fmt.Errorf("%w: unmarshal asset index: %v", ErrNotFound, err)
	}
	if idx.Objects == nil {
		idx.Objects = make(map[string]AssetObject)
	}
	return &idx, nil
}

// Names returns the asset names in lexicographic order.
func (idx *AssetIndex) Names() []string {
	names := make([]string, 0, len(idx.Objects))
	for name := range idx.Objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
