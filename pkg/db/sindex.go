package db

import (
	"context"
	"strings"

	as "github.com/aerospike/aerospike-client-go/v7"
	"github.com/aerospike/aerospike-client-go/v7/types"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
)

// SIPathBinType is the type of the indexed bin values.
type SIPathBinType byte

const (
	InvalidSIDataType     SIPathBinType = 0
	NumericSIDataType     SIPathBinType = 'N'
	StringSIDataType      SIPathBinType = 'S'
	GEO2DSphereSIDataType SIPathBinType = 'G'
	BlobSIDataType        SIPathBinType = 'B'
)

// SIndexType says which part of the bin is indexed.
type SIndexType byte

const (
	InvalidSIndex     SIndexType = 0
	BinSIndex         SIndexType = 'N'
	ListElementSIndex SIndexType = 'L'
	MapKeySIndex      SIndexType = 'K'
	MapValueSIndex    SIndexType = 'V'
)

// SecondaryIndex is one entry of the sindex info response.
type SecondaryIndex struct {
	Namespace string
	Set       string
	Name      string
	Bin       string
	BinType   SIPathBinType
	IndexType SIndexType
	State     string
}

// IndexSpec describes an index an exercise needs.
type IndexSpec struct {
	Set        string
	Name       string
	Bin        string
	Type       as.IndexType
	Collection as.IndexCollectionType
}

func parseBinType(s string) SIPathBinType {
	switch strings.ToLower(s) {
	case "numeric":
		return NumericSIDataType
	case "string", "text":
		return StringSIDataType
	case "geo2dsphere", "geojson":
		return GEO2DSphereSIDataType
	case "blob":
		return BlobSIDataType
	}
	return InvalidSIDataType
}

func parseIndexType(s string) SIndexType {
	switch strings.ToLower(s) {
	case "", "none", "default":
		return BinSIndex
	case "list":
		return ListElementSIndex
	case "mapkeys":
		return MapKeySIndex
	case "mapvalues":
		return MapValueSIndex
	}
	return InvalidSIndex
}

// ParseSecondaryIndexes parses the response of the "sindex/<ns>" info
// command. Entries are separated by ';' and hold ':' separated key=value
// pairs. Both the "bin" and the older "bins" spellings are accepted.
func ParseSecondaryIndexes(info string) []SecondaryIndex {
	var indexes []SecondaryIndex
	for _, entry := range strings.Split(strings.TrimSpace(info), ";") {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		var idx SecondaryIndex
		for _, field := range strings.Split(entry, ":") {
			kv := strings.SplitN(field, "=", 2)
			if len(kv) != 2 {
				continue
			}
			v := strings.TrimSpace(kv[1])
			switch strings.TrimSpace(kv[0]) {
			case "ns":
				idx.Namespace = v
			case "set":
				if v != "NULL" {
					idx.Set = v
				}
			case "indexname":
				idx.Name = v
			case "bin", "bins":
				idx.Bin = v
			case "type":
				idx.BinType = parseBinType(v)
			case "indextype":
				idx.IndexType = parseIndexType(v)
			case "state":
				idx.State = v
			}
		}
		if idx.Name == "" {
			continue
		}
		if idx.IndexType == InvalidSIndex {
			idx.IndexType = BinSIndex
		}
		indexes = append(indexes, idx)
	}
	return indexes
}

// IndexExists reports whether an index with the given name is defined on
// bin of set.
func IndexExists(indexes []SecondaryIndex, name, set, bin string) bool {
	for _, idx := range indexes {
		if idx.Name == name && idx.Set == set && idx.Bin == bin {
			return true
		}
	}
	return false
}

// SecondaryIndexes lists the indexes of the session namespace.
func (db *DB) SecondaryIndexes(ctx context.Context) ([]SecondaryIndex, error) {
	info, err := db.Info(ctx, "sindex/"+db.ns)
	if err != nil {
		return nil, err
	}
	return ParseSecondaryIndexes(info), nil
}

// EnsureIndex creates the index described by spec unless it already exists
// and waits until the server has finished building it. It reports whether a
// new index was created.
func (db *DB) EnsureIndex(ctx context.Context, spec IndexSpec) (bool, error) {
	indexes, err := db.SecondaryIndexes(ctx)
	if err != nil {
		return false, err
	}
	if IndexExists(indexes, spec.Name, spec.Set, spec.Bin) {
		log.Debug("index exists", zap.String("index", spec.Name), zap.String("set", spec.Set), zap.String("bin", spec.Bin))
		return false, nil
	}

	task, aerr := db.client.CreateComplexIndex(nil, db.ns, spec.Set, spec.Name, spec.Bin, spec.Type, spec.Collection)
	if aerr != nil {
		if aerr.Matches(types.INDEX_FOUND) {
			return false, nil
		}
		return false, errors.Annotatef(aerr, "create index %s", spec.Name)
	}
	log.Info("building index", zap.String("index", spec.Name), zap.String("set", spec.Set), zap.String("bin", spec.Bin))

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case aerr := <-task.OnComplete():
		if aerr != nil {
			return false, errors.Annotatef(aerr, "wait for index %s", spec.Name)
		}
	}
	return true, nil
}
