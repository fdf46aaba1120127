package catalog

import "sync"

// Topic IDs of the built-in question bank.
const (
	TopicSQL          = "sql"
	TopicPipelines    = "pipelines"
	TopicModeling     = "modeling"
	TopicSystemDesign = "system_design"
	TopicDebugging    = "debugging"
	TopicCloud        = "cloud"
	TopicPython       = "python"
	TopicDataQuality  = "data_quality"
)

// Default returns the built-in data engineering question bank.
var Default = sync.OnceValue(func() *Catalog {
	c, err := New(seedTopics, seedQuestions)
	if err != nil {
		panic(err)
	}
	return c
})

var seedTopics = []Topic{
	{ID: TopicSQL, Name: "SQL", Description: "Window functions, joins, query tuning"},
	{ID: TopicPipelines, Name: "Data Pipelines", Description: "Batch and streaming pipeline design, idempotency, late data"},
	{ID: TopicModeling, Name: "Data Modeling", Description: "Dimensional modeling, slowly changing dimensions"},
	{ID: TopicSystemDesign, Name: "System Design", Description: "End-to-end data platform architecture"},
	{ID: TopicDebugging, Name: "Debugging", Description: "Diagnosing failing and slow jobs"},
	{ID: TopicCloud, Name: "Cloud Infrastructure", Description: "Storage, compute and cost on AWS, GCP and Azure"},
	{ID: TopicPython, Name: "Python Coding", Description: "Python for data processing"},
	{ID: TopicDataQuality, Name: "Data Quality", Description: "Validation, monitoring and contracts"},
}

var seedQuestions = []Question{
	{
		ID:         "sql_001",
		Topic:      TopicSQL,
		Difficulty: DifficultyMedium,
		Text:       "Write a SQL query using a window function to find the top 3 highest-paid employees in each department. Explain your choice of RANK vs DENSE_RANK vs ROW_NUMBER.",
		Hints: []string{
			"Think about how to group rows by department.",
			"Consider what happens if two employees have the exact same salary.",
			"You'll need a subquery or CTE to filter for rank <= 3.",
		},
		IdealPoints: []string{
			"Uses PARTITION BY department_id",
			"Uses ORDER BY salary DESC",
			"Explains that DENSE_RANK handles ties without skipping numbers, unlike RANK",
			"Correctly filters outside the window function",
		},
	},
	{
		ID:         "sql_002",
		Topic:      TopicSQL,
		Difficulty: DifficultyHard,
		Text:       "How would you optimize a query that joins a very large fact table (billions of rows) with a large dimension table (millions of rows) where the join is skewed?",
		Hints: []string{
			"What is data skew in the context of distributed joins?",
			"Can you break the heavy keys apart?",
			"Look up salting and the limits of broadcast joins.",
		},
		IdealPoints: []string{
			"Identifies the skewed key problem (all rows for one key land on one worker)",
			"Suggests a salted join (random prefix on the heavy keys)",
			"Mentions a broadcast join if the dimension fits in memory",
			"Filters early before joining",
		},
	},
	{
		ID:         "sql_003",
		Topic:      TopicSQL,
		Difficulty: DifficultyEasy,
		Text:       "Explain the difference between UNION and UNION ALL. When would you use one over the other?",
		Hints: []string{
			"One removes duplicates, the other doesn't.",
			"Think about performance implications.",
		},
		IdealPoints: []string{
			"UNION removes duplicates, UNION ALL appends all rows",
			"UNION ALL is faster because it skips the sort/distinct step",
			"Use UNION ALL by default unless unique rows are required",
		},
	},
	{
		ID:         "pipe_001",
		Topic:      TopicPipelines,
		Difficulty: DifficultyMedium,
		Text:       "How do you ensure idempotency in a data pipeline that writes to a data lake? What happens if the job fails halfway?",
		Hints: []string{
			"Idempotency means running the same job twice produces the same result.",
			"Think about overwrite modes vs append modes.",
			"Consider atomic commits or staging directories.",
		},
		IdealPoints: []string{
			"Writes to a temporary or staging location first",
			"Atomically swaps or overwrites the target partition",
			"Avoids plain append without cleanup",
			"Uses unique run IDs to track processed data",
		},
	},
	{
		ID:         "pipe_002",
		Topic:      TopicPipelines,
		Difficulty: DifficultyHard,
		Text:       "Design a pipeline to process real-time clickstream data with late-arriving events. How do you handle events that arrive 1 hour late vs 1 day late?",
		Hints: []string{
			"Look into watermarks.",
			"What is the trade-off between latency and completeness?",
			"How does windowing help?",
		},
		IdealPoints: []string{
			"Uses event time, not processing time",
			"Defines a watermark for acceptable lateness",
			"Routes very late data to a side output for batch reprocessing",
			"Restates previous results when allowed",
		},
	},
	{
		ID:         "model_001",
		Topic:      TopicModeling,
		Difficulty: DifficultyMedium,
		Text:       "Compare star schema and snowflake schema. With modern columnar warehouses (Snowflake, BigQuery, Redshift), which is preferred and why?",
		Hints: []string{
			"Star schema is denormalized. Snowflake is normalized.",
			"Storage is cheap now. Compute (joins) is expensive.",
		},
		IdealPoints: []string{
			"Star schema is generally preferred today",
			"Fewer joins for analytics queries",
			"Columnar compression absorbs the redundancy of a star schema",
			"Snowflake schema is harder for business users to query",
		},
	},
	{
		ID:         "model_002",
		Topic:      TopicModeling,
		Difficulty: DifficultyHard,
		Text:       "Explain Slowly Changing Dimensions (SCD) Type 2. How do you implement it efficiently?",
		Hints: []string{
			"Type 2 keeps history.",
			"You need start_date, end_date and current_flag columns.",
		},
		IdealPoints: []string{
			"Inserts a new row per change and closes the previous row's end_date",
			"Columns: surrogate key, business key, attributes, start date, end date, is_active",
			"Uses MERGE or a hash diff to detect changes before inserting",
		},
	},
	{
		ID:         "sys_001",
		Topic:      TopicSystemDesign,
		Difficulty: DifficultyHard,
		Text:       "Design a data platform for a ride-sharing app. It must support real-time surge pricing, daily financial reporting and a machine learning feature store.",
		Hints: []string{
			"This likely requires a Lambda or Kappa architecture.",
			"Real-time needs streaming (Kafka/Flink).",
			"Reporting needs batch (data warehouse).",
		},
		IdealPoints: []string{
			"Ingestion through Kafka for high-throughput events",
			"Speed layer with Flink or Spark Streaming for pricing",
			"Batch layer from an object-store lake into a warehouse for reporting",
			"Feature store with a low-latency online store and an offline store for training",
		},
	},
	{
		ID:         "sys_002",
		Topic:      TopicSystemDesign,
		Difficulty: DifficultyMedium,
		Text:       "How would you design change data capture from an OLTP Postgres database into an analytics warehouse?",
		Hints: []string{
			"Where does Postgres record every change?",
			"How do you handle schema changes upstream?",
		},
		IdealPoints: []string{
			"Reads the write-ahead log through logical replication (e.g. Debezium)",
			"Publishes change events to a durable log such as Kafka",
			"Applies changes with upserts/MERGE keyed on the primary key",
			"Handles schema evolution and initial snapshot backfill",
		},
	},
	{
		ID:         "debug_001",
		Topic:      TopicDebugging,
		Difficulty: DifficultyMedium,
		Text:       "Your Spark job is failing with an OutOfMemoryError on the driver. What are the likely causes and how do you fix it?",
		Hints: []string{
			"Driver vs executor memory.",
			"Are you bringing too much data back to the driver?",
			"Check for collect() calls.",
		},
		IdealPoints: []string{
			"collect() pulls the dataset onto the driver",
			"broadcast() of a table that is too large",
			"Fix: remove collect(), raise spark.driver.memory, or disable the broadcast join",
		},
	},
	{
		ID:         "debug_002",
		Topic:      TopicDebugging,
		Difficulty: DifficultyEasy,
		Text:       "A daily job that used to take 20 minutes now takes 3 hours. Nothing in the code changed. How do you investigate?",
		Hints: []string{
			"What else could have changed besides the code?",
			"Look at the stage that got slower.",
		},
		IdealPoints: []string{
			"Checks input data volume and skew growth",
			"Compares stage timings in the job UI to find the slow step",
			"Checks cluster resources and contention",
			"Checks for small files or lost partition pruning",
		},
	},
	{
		ID:         "cloud_001",
		Topic:      TopicCloud,
		Difficulty: DifficultyMedium,
		Text:       "Your cloud data warehouse bill doubled last month. How do you find the cause and bring costs down?",
		Hints: []string{
			"Which queries or users consume the most compute?",
			"Is storage or compute the bigger line item?",
		},
		IdealPoints: []string{
			"Breaks down spend by warehouse, user and query",
			"Finds full scans and adds partitioning or clustering",
			"Right-sizes compute and enables auto-suspend",
			"Sets budgets and alerts",
		},
	},
	{
		ID:         "cloud_002",
		Topic:      TopicCloud,
		Difficulty: DifficultyEasy,
		Text:       "When would you store data in object storage (S3/GCS) versus a managed warehouse table?",
		Hints: []string{
			"Think about cost per GB and who reads the data.",
		},
		IdealPoints: []string{
			"Object storage for raw, large, infrequently queried data",
			"Warehouse tables for curated data with interactive queries",
			"Open table formats (Iceberg/Delta) bridge the two",
		},
	},
	{
		ID:         "py_001",
		Topic:      TopicPython,
		Difficulty: DifficultyMedium,
		Text:       "How would you process a 50 GB CSV file in Python on a machine with 8 GB of RAM?",
		Hints: []string{
			"You cannot load it all at once.",
			"Think about iterators and chunks.",
		},
		IdealPoints: []string{
			"Streams the file in chunks (csv module or pandas chunksize)",
			"Aggregates incrementally instead of holding rows",
			"Considers columnar formats or out-of-core engines (DuckDB, Polars)",
		},
	},
	{
		ID:         "py_002",
		Topic:      TopicPython,
		Difficulty: DifficultyEasy,
		Text:       "Explain the difference between a list and a generator in Python and when you would use each.",
		Hints: []string{
			"When is each element computed?",
		},
		IdealPoints: []string{
			"A list materializes all elements in memory",
			"A generator yields elements lazily",
			"Generators suit large or infinite streams and single passes",
		},
	},
	{
		ID:         "dq_001",
		Topic:      TopicDataQuality,
		Difficulty: DifficultyMedium,
		Text:       "How would you detect and prevent bad data from reaching a dashboard used by executives?",
		Hints: []string{
			"Where in the pipeline can checks run?",
			"What happens when a check fails?",
		},
		IdealPoints: []string{
			"Adds checks for nulls, uniqueness, ranges and freshness",
			"Runs checks before publishing (write-audit-publish)",
			"Alerts owners and blocks publication on failure",
			"Uses data contracts with upstream producers",
		},
	},
	{
		ID:         "dq_002",
		Topic:      TopicDataQuality,
		Difficulty: DifficultyHard,
		Text:       "Row counts in a table dropped 30% overnight but no job failed. Walk through how you would find the root cause.",
		Hints: []string{
			"Silent failures often start upstream.",
			"Compare against the previous day partition by partition.",
		},
		IdealPoints: []string{
			"Checks upstream sources and ingestion logs for missing partitions",
			"Compares counts per partition or source to localize the drop",
			"Checks recent filter or join changes that drop rows",
			"Adds volume anomaly monitoring to catch it next time",
		},
	},
}
