package splitview

import (
	"github.com/oakwood-commons/splitview/internal/rules"
	"github.com/oakwood-commons/splitview/pkg/logger"
)

// RulesDelegate compiles the CEL rules in cfg into a Delegate. It returns a
// nil delegate when no rule is configured. Rule evaluation errors are logged
// and treated as declined.
func RulesDelegate(cfg RuleConfig) (*Delegate, error) {
	engine, err := rules.Compile(rules.Config{CollapseInPlace: cfg.CollapseInPlace})
	if err != nil {
		return nil, err
	}
	if !engine.HasCollapseInPlace() {
		return nil, nil
	}
	return &Delegate{
		Collapse: func(c *Controller, auxiliary Content, kind ColumnKind, primary Content) bool {
			ok, err := engine.CollapseInPlace(rules.Facts{
				Column:         kind.String(),
				Width:          c.Width(),
				Columns:        c.Count(),
				MaxColumns:     c.Config().MaximumNumberOfColumns,
				AuxiliaryTitle: titleOf(auxiliary),
				PrimaryTitle:   titleOf(primary),
			})
			if err != nil {
				c.log.Error(err, "collapse_in_place rule", logger.ColumnKey, kind.String())
				return false
			}
			return ok
		},
	}, nil
}
