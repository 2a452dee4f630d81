package delayed

import "errors"

// errNonConjugate signals that marginalize found no conjugate rule linking a
// node to its stochastic parent. Callers recover by realizing the parent
// directly and retrying.
var errNonConjugate = errors.New("delayed: no conjugate rule applies")
