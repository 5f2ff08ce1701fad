package app

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	amino "github.com/tendermint/go-amino"
)

// ResultSet is the list of keys, or the list of values, of a query
// response.
type ResultSet struct {
	Results [][]byte `json:"results"`
}

var _ tokenswap.Persistent = (*ResultSet)(nil)

func (r *ResultSet) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(r)
}

func (r *ResultSet) Unmarshal(raw []byte) error {
	if len(raw) == 0 {
		*r = ResultSet{}
		return nil
	}
	return amino.UnmarshalBinaryBare(raw, r)
}

// ResultsFromKeys collects the keys of models, in order.
func ResultsFromKeys(models []tokenswap.Model) *ResultSet {
	var res ResultSet
	for _, m := range models {
		res.Results = append(res.Results, m.Key)
	}
	return &res
}

// ResultsFromValues collects the values of models, in order.
func ResultsFromValues(models []tokenswap.Model) *ResultSet {
	var res ResultSet
	for _, m := range models {
		res.Results = append(res.Results, m.Value)
	}
	return &res
}

// JoinResults pairs the keys and values of a query response back into
// models.
func JoinResults(keys, values *ResultSet) ([]tokenswap.Model, error) {
	if len(keys.Results) != len(values.Results) {
		return nil, errors.Wrapf(errors.ErrInput, "%d keys and %d values", len(keys.Results), len(values.Results))
	}
	var models []tokenswap.Model
	for i, k := range keys.Results {
		models = append(models, tokenswap.Pair(k, values.Results[i]))
	}
	return models, nil
}

// UnmarshalOneResult decodes the first value of a serialized result set into
// o. An empty set fails with ErrNotFound.
func UnmarshalOneResult(raw []byte, o tokenswap.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(raw); err != nil {
		return errors.Wrap(err, "result set")
	}
	if len(res.Results) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty result set")
	}
	return o.Unmarshal(res.Results[0])
}
