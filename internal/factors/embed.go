package factors

import _ "embed"

// defaultFactorsJSON is the built-in emission factor data set. Operators can
// replace it wholesale with NewClientFromFile.
//
//go:embed data/default_factors.json
var defaultFactorsJSON []byte
