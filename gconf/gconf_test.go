package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store"
	"github.com/iov-one/tokenswap/weavetest/assert"
)

type testConf struct {
	Name  string `json:"name"`
	Limit int64  `json:"limit"`
}

func (c *testConf) Validate() error {
	if c.Limit < 0 {
		return errors.Wrap(errors.ErrInput, "negative limit")
	}
	return nil
}

func (c *testConf) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

func (c *testConf) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, c)
}

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	var got testConf
	assert.IsErr(t, errors.ErrNotFound, Load(db, "mypkg", &got))

	assert.IsErr(t, errors.ErrInput, Save(db, "mypkg", &testConf{Limit: -1}))
	assert.IsErr(t, errors.ErrNotFound, Load(db, "mypkg", &got))

	want := testConf{Name: "first", Limit: 7}
	assert.Nil(t, Save(db, "mypkg", &want))
	assert.Nil(t, Load(db, "mypkg", &got))
	assert.Equal(t, want, got)

	// Configurations are stored per package.
	assert.IsErr(t, errors.ErrNotFound, Load(db, "otherpkg", &got))
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
		want    testConf
	}{
		"configuration loaded": {
			genesis: `{"conf": {"mypkg": {"name": "x", "limit": 3}}}`,
			want:    testConf{Name: "x", Limit: 3},
		},
		"missing conf section": {
			genesis: `{}`,
			wantErr: errors.ErrNotFound,
		},
		"missing package": {
			genesis: `{"conf": {"otherpkg": {"limit": 3}}}`,
			wantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			genesis: `{"conf": {"mypkg": {"limit": -3}}}`,
			wantErr: errors.ErrInput,
		},
		"malformed configuration": {
			genesis: `{"conf": {"mypkg": {"limit": "many"}}}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts tokenswap.Options
			if err := json.Unmarshal([]byte(tc.genesis), &opts); err != nil {
				t.Fatalf("cannot decode genesis: %s", err)
			}
			db := store.MemStore()
			err := InitConfig(db, opts, "mypkg", &testConf{})
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)

			var got testConf
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.want, got)
		})
	}
}
