package css

import (
	"go.uber.org/zap"

	"varcss/common"
)

// ParseAs reads text in requested format. Auto picks comment driven parsing
// when text has structural comments and stylesheet blocks otherwise.
func (p *Parser) ParseAs(data []byte, format common.ImportFormat, opts BlockOptions, source ...string) *Graph {
	if format == common.ImportFormatAuto {
		format = common.ImportFormatBlocks
		if HasStructureComments(data) {
			format = common.ImportFormatComments
		}
		p.log.Debug("Detected import format", zap.Stringer("format", format))
	}
	if format == common.ImportFormatBlocks {
		return p.ParseBlocks(data, opts, source...)
	}
	return p.Parse(data, source...)
}
