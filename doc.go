// Package livio recommends compatible roommates from a tenant dataset.
//
// Every tenant is encoded into a normalized feature vector. A query names one
// or more seed tenants; candidates are ranked by their mean cosine similarity
// to the seeds, optionally post-filtered, and returned with a side-by-side
// comparison of seeds and matches.
//
//	client, _ := livio.New(livio.WithDataset("data/tenants_dataset.csv"))
//	defer client.Close()
//
//	rec, _ := client.Recommend(ctx, []int{12, 40},
//	    livio.TopN(5), livio.NonSmoker(), livio.Locale("es"),
//	)
//	for _, m := range rec.Matches {
//	    fmt.Println(m.ID, m.Similarity)
//	}
//	_ = rec.WriteCSV(os.Stdout)
//
// The encoded matrix is cached next to the dataset by default, or in
// Redis/Valkey with WithRedis / WithValkey.
package livio
