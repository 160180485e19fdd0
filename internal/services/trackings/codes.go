package trackings

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
)

const codePrefix = "TRK-"

// SnowflakeCodes issues codes like TRK-1A2B3C4D5E6F. Codes from one node are
// unique and roughly time ordered.
type SnowflakeCodes struct {
	node *snowflake.Node
}

func NewSnowflakeCodes(node int64) (*SnowflakeCodes, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, errors.Wrap(err, "snowflake node")
	}
	return &SnowflakeCodes{node: n}, nil
}

func (g *SnowflakeCodes) NewCode() string {
	return codePrefix + strings.ToUpper(g.node.Generate().Base36())
}
