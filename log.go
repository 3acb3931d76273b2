// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

package dyvrf

import logging "github.com/ipfs/go-log/v2"

// Secret values (sk and anything derived from it before inversion) are never
// logged.
var log = logging.Logger("dyvrf")
