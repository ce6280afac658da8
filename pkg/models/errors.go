/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

import "errors"

var (
	ErrUnknownRange        = errors.New("unknown range token")
	ErrUnknownSourceKind   = errors.New("unknown source kind")
	ErrMissingBaseURL      = errors.New("source.http.base_url is required")
	ErrMissingCNPG         = errors.New("source.cnpg host and database are required")
	ErrNATSURLRequired     = errors.New("nats url is required")
	ErrInvalidDuration     = errors.New("invalid duration")
	ErrNegativeRefresh     = errors.New("refresh_interval must not be negative")
	ErrTLSMaterialRequired = errors.New("cert_file, key_file and ca_file are required for mtls")
)
