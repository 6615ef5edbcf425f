// Copyright 2018 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package prop

// Properties accepted through -p name=value and -P property files.
const (
	Host           = "aerospike.host"
	Port           = "aerospike.port"
	Namespace      = "aerospike.ns"
	Timeout        = "aerospike.timeout"
	Expiration     = "aerospike.expiration"
	ConnectRetries = "aerospike.connect.retries"

	DataDir  = "data.dir"
	LoadRate = "load.rate"

	OutputStyle = "output.style"

	LogLevel = "log.level"
	LogFile  = "log.file"
)
