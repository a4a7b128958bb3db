// Copyright 2021 - 2022 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package moerr

// MySQL error codes reported to clients.
const (
	ER_BAD_FIELD_ERROR                = 1054
	ER_SYNTAX_ERROR                   = 1149
	ER_UNKNOWN_ERROR                  = 1105
	ER_WRONG_ARGUMENTS                = 1210
	ER_NOT_SUPPORTED_YET              = 1235
	ER_WRONG_PARAMCOUNT_TO_NATIVE_FCT = 1582
)
