// Package stepchain turns raw phone step-count telemetry into a daily
// activity sequence and models that sequence as a first-order Markov chain
// over three activity levels.
//
// What is inside?
//
//	• Ingestion: raw "user_id,start,end,value" exports, per-day totals
//	• Classification: Low (≤ 4000), Medium (≤ 9000), High (> 9000)
//	• Contiguity: only runs of consecutive calendar days survive
//	• Markov analysis: counts, transition matrix, stationary distribution,
//	  verification of πP = π and k-step matrices Pᵏ
//	• Reporting: localized tables (Turkish and English), heatmaps, timelines
//
// Under the hood, everything is organized under a few subpackages:
//
//	activity/   RawSample, DailyRecord, states, aggregation, contiguity, CSV I/O
//	markov/     transition counts, normalization, stationary distribution, Analyzer
//	matrix/     dense matrices, products, powers, eigenvalues and eigenvectors
//	report/     message catalogs, matrix tables, heatmaps and timelines
//	config/     environment and .env driven configuration
//
// The command-line entry point lives in cmd/stepchain:
//
//	stepchain build   --raw step-count-from-phone-app.csv --out gunluk_veriler.csv
//	stepchain analyze --in gunluk_veriler.csv --steps 3,10,100
//
// A runnable walkthrough with a synthetic month lives in examples/.
package stepchain
