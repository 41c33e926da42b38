package smtp

import "time"

const DefaultTimeout = 10 * time.Second

var timeNow = time.Now
