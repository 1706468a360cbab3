package txn

import (
	"strconv"

	"github.com/hashicorp/go-memdb"
	"github.com/mosaicnetworks/gossamer/src/common"
	"github.com/pkg/errors"
)

const table = "kv"

// entry is a row of the kv table. ID is the decimal form of Key.
type entry struct {
	ID    string
	Key   int
	Value int
}

// Store is an in-memory key-value store.
type Store struct {
	db *memdb.MemDB
}

func NewStore() (*Store, error) {
	db, err := memdb.NewMemDB(&memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			table: &memdb.TableSchema{
				Name: table,
				Indexes: map[string]*memdb.IndexSchema{
					"id": &memdb.IndexSchema{
						Name:         "id",
						AllowMissing: false,
						Unique:       true,
						Indexer: &memdb.StringFieldIndex{
							Field: "ID",
						},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating kv schema")
	}
	return &Store{db: db}, nil
}

// Apply executes ops in a single write transaction and returns them with the
// values of reads filled in. Either every operation is applied or none is.
func (s *Store) Apply(ops []Op) ([]Op, error) {
	tx := s.db.Txn(true)
	defer tx.Abort()

	res := make([]Op, 0, len(ops))
	for _, op := range ops {
		switch op.Kind {
		case Read:
			value, err := get(tx, op.Key)
			switch {
			case common.IsStore(err, common.KeyNotFound):
				res = append(res, Op{Kind: Read, Key: op.Key})
			case err != nil:
				return nil, err
			default:
				res = append(res, Op{Kind: Read, Key: op.Key, Value: &value})
			}

		case Write:
			if op.Value == nil {
				return nil, common.NewStoreErr("KV", common.InvalidOperation, op.String())
			}
			e := &entry{ID: strconv.Itoa(op.Key), Key: op.Key, Value: *op.Value}
			if err := tx.Insert(table, e); err != nil {
				return nil, errors.Wrapf(err, "writing %s", op)
			}
			value := *op.Value
			res = append(res, Op{Kind: Write, Key: op.Key, Value: &value})

		default:
			return nil, common.NewStoreErr("KV", common.InvalidOperation, op.String())
		}
	}

	tx.Commit()
	return res, nil
}

// Get returns the value of key, or a KeyNotFound StoreErr.
func (s *Store) Get(key int) (int, error) {
	tx := s.db.Txn(false)
	defer tx.Abort()
	return get(tx, key)
}

func get(tx *memdb.Txn, key int) (int, error) {
	raw, err := tx.First(table, "id", strconv.Itoa(key))
	if err != nil {
		return 0, errors.Wrapf(err, "reading %d", key)
	}
	if raw == nil {
		return 0, common.NewStoreErr("KV", common.KeyNotFound, strconv.Itoa(key))
	}
	return raw.(*entry).Value, nil
}
